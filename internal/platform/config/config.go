package config

import (
	"log"
	"strings"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RateLimit          string
	CORSAllowedOrigins []string

	LedgerPageSize         int
	TrialBalanceCacheSize  int
	BalanceSheetTolerance  decimal.Decimal
	DefaultFunctionalCcy   string
	DefaultPostingAccounts domain.PostingAccounts
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "commodity-ledger")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("LEDGER_PAGE_SIZE", 500)
	v.SetDefault("TRIAL_BALANCE_CACHE_SIZE", 256)
	v.SetDefault("BALANCE_SHEET_TOLERANCE", "0")
	v.SetDefault("DEFAULT_FUNCTIONAL_CURRENCY", "NGN")
	v.SetDefault("DEFAULT_CASH_ACCOUNT", "1000")
	v.SetDefault("DEFAULT_RECEIVABLE_ACCOUNT", "1200")
	v.SetDefault("DEFAULT_PAYABLE_ACCOUNT", "2000")
	v.SetDefault("DEFAULT_REVENUE_ACCOUNT", "4000")
	v.SetDefault("DEFAULT_EXPENSE_ACCOUNT", "5000")

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:  strings.ToLower(v.GetString("STORAGE_DRIVER")),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		RateLimit:      v.GetString("RATE_LIMIT"),
		DefaultPostingAccounts: domain.PostingAccounts{
			Cash:       v.GetString("DEFAULT_CASH_ACCOUNT"),
			Receivable: v.GetString("DEFAULT_RECEIVABLE_ACCOUNT"),
			Payable:    v.GetString("DEFAULT_PAYABLE_ACCOUNT"),
			Revenue:    v.GetString("DEFAULT_REVENUE_ACCOUNT"),
			Expense:    v.GetString("DEFAULT_EXPENSE_ACCOUNT"),
		},
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, ledger data is not persisted across restarts.")
	default:
		log.Printf("Warning: Invalid value for STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.LedgerPageSize = v.GetInt("LEDGER_PAGE_SIZE")
	if cfg.LedgerPageSize <= 0 {
		log.Printf("Warning: Invalid value for LEDGER_PAGE_SIZE (%d). Defaulting to 500.\n", cfg.LedgerPageSize)
		cfg.LedgerPageSize = 500
	}

	cfg.TrialBalanceCacheSize = v.GetInt("TRIAL_BALANCE_CACHE_SIZE")
	if cfg.TrialBalanceCacheSize <= 0 {
		log.Printf("Warning: Invalid value for TRIAL_BALANCE_CACHE_SIZE (%d). Defaulting to 256.\n", cfg.TrialBalanceCacheSize)
		cfg.TrialBalanceCacheSize = 256
	}

	toleranceStr := v.GetString("BALANCE_SHEET_TOLERANCE")
	tolerance, err := decimal.NewFromString(toleranceStr)
	if err != nil || tolerance.IsNegative() {
		log.Printf("Warning: Invalid value for BALANCE_SHEET_TOLERANCE ('%s'). Defaulting to 0.\n", toleranceStr)
		tolerance = decimal.Zero
	}
	cfg.BalanceSheetTolerance = tolerance

	cfg.DefaultFunctionalCcy = strings.ToUpper(v.GetString("DEFAULT_FUNCTIONAL_CURRENCY"))
	if len(cfg.DefaultFunctionalCcy) != 3 {
		log.Printf("Warning: Invalid value for DEFAULT_FUNCTIONAL_CURRENCY ('%s'). Defaulting to NGN.\n", cfg.DefaultFunctionalCcy)
		cfg.DefaultFunctionalCcy = "NGN"
	}

	return cfg, nil
}
