package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/cmd/docs"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/middleware"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/clock"
	"github.com/Adams-ibr/Commodity-sub000/internal/platform/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	if err := RegisterValidators(); err != nil {
		return fmt.Errorf("failed to register validators: %w", err)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) error {
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1",
		cors.New(newCORSConfig(cfg.CORSAllowedOrigins)),
		middleware.RateLimit(rateLimiter),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	clk := service.Clock
	if clk == nil {
		clk = clock.System{}
	}

	// Global reference data
	registerCurrencyRoutes(v1, service.Currency)
	registerExchangeRateRoutes(v1, service.ExchangeRate, clk)

	// Everything else is scoped to a company
	company := registerCompanyRoutes(v1, service.Company)
	registerAccountRoutes(company, service.Account)
	registerJournalRoutes(company, service.Journal)
	registerLedgerRoutes(company, service.Ledger, clk)
	registerReportingRoutes(company, service.Reporting, clk)
	registerInvoiceRoutes(company, service.Invoice)
	return nil
}

// newCORSConfig allows the configured origins. An empty list or "*" opens the
// API to every origin without credentials.
func newCORSConfig(origins []string) cors.Config {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		corsConfig.AllowAllOrigins = true
		return corsConfig
	}
	corsConfig.AllowOrigins = origins
	corsConfig.AllowCredentials = true
	return corsConfig
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
