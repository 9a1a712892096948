package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/dto"
	"github.com/stretchr/testify/mock"
)

func (suite *HandlerTestSuite) cashSaleBody() map[string]any {
	return map[string]any{
		"entryDate":   "2024-01-15T00:00:00Z",
		"description": "Cash sale",
		"lines": []map[string]any{
			{"accountCode": "1000", "amount": "500.00", "side": "DEBIT"},
			{"accountCode": "4000", "amount": "500.00", "side": "CREDIT"},
		},
	}
}

func (suite *HandlerTestSuite) sampleEntry(status domain.JournalStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:      "entry-1",
		CompanyID:    suite.companyID,
		EntryNumber:  "JE-000001",
		EntryDate:    day(2024, 1, 15),
		CurrencyCode: "NGN",
		Status:       status,
		Lines: []domain.JournalLine{
			{LineNo: 1, AccountCode: "1000", Amount: dec("500"), Side: domain.Debit},
			{LineNo: 2, AccountCode: "4000", Amount: dec("500"), Side: domain.Credit},
		},
	}
}

func (suite *HandlerTestSuite) TestCreateJournal_DraftByDefault() {
	suite.journals.On("CreateDraft", mock.Anything, suite.companyID, mock.MatchedBy(func(req dto.CreateJournalRequest) bool {
		return len(req.Lines) == 2 && req.EntryDate.Equal(day(2024, 1, 15))
	}), testUserID).Return(suite.sampleEntry(domain.Draft), nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/journals"), suite.cashSaleBody())

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Draft, resp.Status)
	suite.Equal("2024-01-15", resp.EntryDate)
	suite.True(dec("500").Equal(resp.TotalDebits))
	suite.journals.AssertNotCalled(suite.T(), "CreateAndPost", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateJournal_PostImmediately() {
	suite.journals.On("CreateAndPost", mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateJournalRequest"), testUserID).
		Return(suite.sampleEntry(domain.Posted), nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/journals?post=true"), suite.cashSaleBody())

	suite.Equal(http.StatusCreated, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "CreateDraft", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateJournal_Imbalanced() {
	suite.journals.On("CreateAndPost", mock.Anything, suite.companyID, mock.AnythingOfType("dto.CreateJournalRequest"), testUserID).
		Return(nil, &apperrors.ImbalancedEntryError{Debits: dec("500"), Credits: dec("499")}).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/journals?post=true"), suite.cashSaleBody())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.Contains(suite.errorBody(w), "not balanced")
}

func (suite *HandlerTestSuite) TestCreateJournal_BindingErrors() {
	w := suite.do(http.MethodPost, suite.companyPath("/journals"), map[string]any{
		"entryDate": "2024-01-15T00:00:00Z",
		"lines":     []map[string]any{{"accountCode": "1000", "amount": "1", "side": "DEBIT"}},
	})
	suite.Equal(http.StatusBadRequest, w.Code, "a single line is rejected")

	body := suite.cashSaleBody()
	body["lines"] = []map[string]any{
		{"accountCode": "1000", "amount": "1", "side": "LEFT"},
		{"accountCode": "4000", "amount": "1", "side": "CREDIT"},
	}
	w = suite.do(http.MethodPost, suite.companyPath("/journals"), body)
	suite.Equal(http.StatusBadRequest, w.Code, "unknown side is rejected")

	w = suite.do(http.MethodPost, suite.companyPath("/journals?post=maybe"), suite.cashSaleBody())
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, suite.companyPath("/journals"), `{"entryDate":`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestPostJournal_AlreadyPosted() {
	suite.journals.On("PostJournal", mock.Anything, suite.companyID, "entry-1", testUserID).
		Return(nil, apperrors.ErrAlreadyPosted).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/journals/entry-1/post"), nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestReverseJournal() {
	reversal := suite.sampleEntry(domain.Posted)
	reversal.EntryID = "entry-2"
	original := "entry-1"
	reversal.ReversalOf = &original
	suite.journals.On("ReverseJournal", mock.Anything, suite.companyID, "entry-1", "duplicate booking", testUserID).
		Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, suite.companyPath("/journals/entry-1/reverse"), map[string]any{"reason": "duplicate booking"})

	suite.Require().Equal(http.StatusCreated, w.Code)
	var resp dto.JournalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.ReversalOf)
	suite.Equal("entry-1", *resp.ReversalOf)
}

func (suite *HandlerTestSuite) TestReverseJournal_RequiresReason() {
	w := suite.do(http.MethodPost, suite.companyPath("/journals/entry-1/reverse"), map[string]any{})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.journals.AssertNotCalled(suite.T(), "ReverseJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListJournals_DefaultsAndFilters() {
	next := "token-2"
	suite.journals.On("ListJournals", mock.Anything, suite.companyID, dto.ListJournalsParams{Limit: 20}).
		Return(&dto.ListJournalsResponse{Journals: []dto.JournalResponse{}, NextToken: &next}, nil).Once()
	suite.journals.On("ListJournals", mock.Anything, suite.companyID, dto.ListJournalsParams{Status: "POSTED", Limit: 5, NextToken: "token-2"}).
		Return(&dto.ListJournalsResponse{Journals: []dto.JournalResponse{}}, nil).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/journals"), nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)

	w = suite.do(http.MethodGet, suite.companyPath("/journals?status=POSTED&limit=5&nextToken=token-2"), nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, suite.companyPath("/journals?limit=500"), nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetJournal_NotFound() {
	suite.journals.On("GetJournal", mock.Anything, suite.companyID, "missing").
		Return(nil, apperrors.NewNotFoundError("journal entry missing not found")).Once()

	w := suite.do(http.MethodGet, suite.companyPath("/journals/missing"), nil)

	suite.Equal(http.StatusNotFound, w.Code)
}
