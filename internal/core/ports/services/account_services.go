package services

import (
	"context"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error)

	// GetAccountsByCodes fails with apperrors.ErrNotFound if any code is unknown.
	GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)
	UpdateAccount(ctx context.Context, companyID, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, companyID, code string, userID string) error
	ActivateAccount(ctx context.Context, companyID, code string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
