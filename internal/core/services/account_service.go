package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
)

// accountService manages each company's chart of accounts.
type accountService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	accountRepo portsrepo.AccountRepositoryFacade
	companyRepo portsrepo.CompanyReader
}

// NewAccountService creates the account registry service.
func NewAccountService(txManager portsrepo.TransactionManager, accountRepo portsrepo.AccountRepositoryFacade, companyRepo portsrepo.CompanyReader, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		txManager:   txManager,
		accountRepo: accountRepo,
		companyRepo: companyRepo,
	}
	applyOptions(&svc.BaseService, options)
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	if !domain.IsValidAccountCode(code) {
		return nil, fmt.Errorf("%w: account code %q is not valid", apperrors.ErrValidation, req.Code)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if req.ParentCode == code {
		return nil, fmt.Errorf("%w: account cannot be its own parent", apperrors.ErrValidation)
	}
	if _, err := s.companyRepo.FindCompanyByID(ctx, companyID); err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}

	account := domain.Account{
		CompanyID:   companyID,
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		AccountType: req.AccountType,
		Subtype:     req.Subtype,
		ParentCode:  req.ParentCode,
		IsActive:    true,
		AuditFields: s.newAuditFields(userID),
	}

	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		if account.ParentCode != "" {
			parent, err := s.accountRepo.FindAccountByCode(ctx, companyID, account.ParentCode)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return fmt.Errorf("%w: parent account %s does not exist", apperrors.ErrValidation, account.ParentCode)
				}
				return err
			}
			if parent.AccountType != account.AccountType {
				return fmt.Errorf("%w: parent account %s is %s, not %s",
					apperrors.ErrValidation, parent.Code, parent.AccountType, account.AccountType)
			}
		}
		return s.accountRepo.SaveAccount(ctx, account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create account",
			slog.String("company_id", companyID),
			slog.String("code", code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("company_id", companyID),
		slog.String("code", code),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountService) GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", code, err)
	}
	return account, nil
}

// GetAccountsByCodes fails when any requested code is unknown.
func (s *accountService) GetAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, companyID, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to get accounts: %w", err)
	}
	if missing := missingCodes(accounts, codes); len(missing) > 0 {
		return nil, fmt.Errorf("%w: accounts %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, companyID string, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount edits the descriptive fields. The type may change only while no
// posted line references the account.
func (s *accountService) UpdateAccount(ctx context.Context, companyID, code string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	var updated domain.Account
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
		if err != nil {
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
			}
			account.Name = name
		}
		if req.Subtype != nil {
			account.Subtype = *req.Subtype
		}
		if req.AccountType != nil && *req.AccountType != account.AccountType {
			if !req.AccountType.IsValid() {
				return fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, *req.AccountType)
			}
			posted, err := s.accountRepo.AccountHasPostings(ctx, companyID, code)
			if err != nil {
				return err
			}
			if posted {
				return fmt.Errorf("%w: account %s has posted lines, its type cannot change", apperrors.ErrValidation, code)
			}
			account.AccountType = *req.AccountType
		}

		s.touch(&account.AuditFields, userID)
		if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
			return err
		}
		updated = *account
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("company_id", companyID),
			slog.String("code", code))
		return nil, fmt.Errorf("failed to update account %s: %w", code, err)
	}
	return &updated, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, companyID, code string, userID string) error {
	return s.setActive(ctx, companyID, code, false, userID)
}

func (s *accountService) ActivateAccount(ctx context.Context, companyID, code string, userID string) error {
	return s.setActive(ctx, companyID, code, true, userID)
}

func (s *accountService) setActive(ctx context.Context, companyID, code string, active bool, userID string) error {
	err := s.txManager.WithinCompanyTx(ctx, companyID, func(ctx context.Context) error {
		account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
		if err != nil {
			return err
		}
		if account.IsActive == active {
			return nil
		}
		account.IsActive = active
		s.touch(&account.AuditFields, userID)
		return s.accountRepo.UpdateAccount(ctx, *account)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to change account status",
			slog.String("company_id", companyID),
			slog.String("code", code),
			slog.Bool("active", active))
		return fmt.Errorf("failed to update account %s: %w", code, err)
	}
	s.LogInfo(ctx, "Account status changed",
		slog.String("company_id", companyID),
		slog.String("code", code),
		slog.Bool("active", active))
	return nil
}

func missingCodes(accounts map[string]domain.Account, codes []string) []string {
	var missing []string
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if _, ok := accounts[code]; !ok && !seen[code] {
			missing = append(missing, code)
			seen[code] = true
		}
	}
	sort.Strings(missing)
	return missing
}
