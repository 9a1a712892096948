package repositories

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// FindAccountsByCodes returns the accounts keyed by code. Unknown codes are
	// simply absent from the map.
	FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts returns the accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)

	// AccountHasPostings reports whether a posted or reversed entry has a line on the account.
	AccountHasPostings(ctx context.Context, companyID, code string) (bool, error)
}

// AccountWriter defines write operations for the chart of accounts
type AccountWriter interface {
	// SaveAccount returns apperrors.ErrDuplicate if the code is taken within the company.
	SaveAccount(ctx context.Context, account domain.Account) error
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
