package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	portssvc "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/services"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const companyA = "company-a"

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo    *MockAccountRepository
	companyRepo *MockCompanyRepository
	service     portssvc.AccountSvcFacade
	ctx         context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.companyRepo = new(MockCompanyRepository)
	suite.service = services.NewAccountService(passthroughTx{}, suite.mockRepo, suite.companyRepo)
	suite.ctx = context.Background()
	suite.companyRepo.On("FindCompanyByID", mock.Anything, companyA).
		Return(&domain.Company{CompanyID: companyA, FunctionalCurrency: "USD"}, nil).Maybe()
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset, Subtype: "bank"}
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.CompanyID == companyA && a.IsActive
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, companyA, req, testUser)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("Cash", account.Name)
	suite.Equal(domain.Asset, account.AccountType)
	suite.Equal("bank", account.Subtype)
	suite.Equal(testUser, account.CreatedBy)
	suite.Equal(testUser, account.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}
	suite.mockRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Return(apperrors.NewDuplicateError("account 1000 already exists")).Once()

	account, err := suite.service.CreateAccount(suite.ctx, companyA, req, testUser)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidInput() {
	tests := []struct {
		name string
		req  dto.CreateAccountRequest
	}{
		{"bad code", dto.CreateAccountRequest{Code: "-10", Name: "x", AccountType: domain.Asset}},
		{"bad type", dto.CreateAccountRequest{Code: "1000", Name: "x", AccountType: "INCOME"}},
		{"blank name", dto.CreateAccountRequest{Code: "1000", Name: "  ", AccountType: domain.Asset}},
		{"self parent", dto.CreateAccountRequest{Code: "1000", Name: "x", AccountType: domain.Asset, ParentCode: "1000"}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.service.CreateAccount(suite.ctx, companyA, tt.req, testUser)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentMustShareType() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "1000").
		Return(&domain.Account{CompanyID: companyA, Code: "1000", AccountType: domain.Asset}, nil).Once()

	req := dto.CreateAccountRequest{Code: "2100", Name: "Loans", AccountType: domain.Liability, ParentCode: "1000"}
	_, err := suite.service.CreateAccount(suite.ctx, companyA, req, testUser)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_MissingParent() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "1999").
		Return(nil, apperrors.ErrNotFound).Once()

	req := dto.CreateAccountRequest{Code: "1010", Name: "Petty cash", AccountType: domain.Asset, ParentCode: "1999"}
	_, err := suite.service.CreateAccount(suite.ctx, companyA, req, testUser)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownCompany() {
	suite.companyRepo.On("FindCompanyByID", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(suite.ctx, "ghost", dto.CreateAccountRequest{Code: "1000", Name: "Cash", AccountType: domain.Asset}, testUser)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeBlockedOncePosted() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "4000").
		Return(&domain.Account{CompanyID: companyA, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}, nil).Once()
	suite.mockRepo.On("AccountHasPostings", mock.Anything, companyA, "4000").Return(true, nil).Once()

	newType := domain.Expense
	_, err := suite.service.UpdateAccount(suite.ctx, companyA, "4000", dto.UpdateAccountRequest{AccountType: &newType}, testUser)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_TypeChangeAllowedWithoutPostings() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "4000").
		Return(&domain.Account{CompanyID: companyA, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}, nil).Once()
	suite.mockRepo.On("AccountHasPostings", mock.Anything, companyA, "4000").Return(false, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.AccountType == domain.Expense && a.Name == "Freight"
	})).Return(nil).Once()

	newType := domain.Expense
	newName := "Freight"
	account, err := suite.service.UpdateAccount(suite.ctx, companyA, "4000",
		dto.UpdateAccountRequest{AccountType: &newType, Name: &newName}, testUser)

	suite.Require().NoError(err)
	suite.Equal(domain.Expense, account.AccountType)
	suite.Equal("Freight", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "1000").
		Return(&domain.Account{CompanyID: companyA, Code: "1000", AccountType: domain.Asset, IsActive: true}, nil).Once()
	suite.mockRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return !a.IsActive && a.LastUpdatedBy == testUser
	})).Return(nil).Once()

	err := suite.service.DeactivateAccount(suite.ctx, companyA, "1000", testUser)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestActivateAlreadyActiveIsNoop() {
	suite.mockRepo.On("FindAccountByCode", mock.Anything, companyA, "1000").
		Return(&domain.Account{CompanyID: companyA, Code: "1000", AccountType: domain.Asset, IsActive: true}, nil).Once()

	err := suite.service.ActivateAccount(suite.ctx, companyA, "1000", testUser)

	suite.Require().NoError(err)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetAccountsByCodes_MissingCode() {
	codes := []string{"1000", "9999"}
	suite.mockRepo.On("FindAccountsByCodes", mock.Anything, companyA, codes).
		Return(map[string]domain.Account{"1000": {Code: "1000"}}, nil).Once()

	accounts, err := suite.service.GetAccountsByCodes(suite.ctx, companyA, codes)

	suite.Nil(accounts)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "9999")
}

func (suite *AccountServiceTestSuite) TestListAccounts_RepoError() {
	boom := errors.New("db down")
	suite.mockRepo.On("ListAccounts", mock.Anything, companyA, true).Return(nil, boom).Once()

	_, err := suite.service.ListAccounts(suite.ctx, companyA, true)

	suite.ErrorIs(err, boom)
}
