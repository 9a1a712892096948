package apperrors_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Adams-ibr/Commodity-sub000/internal/apperrors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"imbalanced entry", &apperrors.ImbalancedEntryError{EntryID: "e1", Debits: decimal.NewFromInt(10), Credits: decimal.NewFromInt(9)}, apperrors.ErrImbalancedEntry},
		{"ledger imbalance", &apperrors.LedgerImbalanceError{CompanyID: "c1", AsOf: date}, apperrors.ErrLedgerImbalance},
		{"state transition", &apperrors.InvalidStateTransitionError{Entity: "invoice", ID: "i1", From: "PAID", To: "PAYMENT"}, apperrors.ErrInvalidStateTransition},
		{"no rate", &apperrors.NoRateAvailableError{From: "USD", To: "NGN", Date: date}, apperrors.ErrNoRateAvailable},
		{"payment", &apperrors.InvalidPaymentError{InvoiceID: "i1", Amount: decimal.Zero, Reason: "amount must be positive"}, apperrors.ErrInvalidPayment},
		{"not found", apperrors.NewNotFoundError("account 1000"), apperrors.ErrNotFound},
		{"validation", apperrors.NewValidationError("bad"), apperrors.ErrValidation},
		{"duplicate", apperrors.NewDuplicateError("dup"), apperrors.ErrDuplicate},
		{"app error without cause", apperrors.NewAppError(500, "boom", nil), apperrors.ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("service layer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.sentinel))
			assert.NotEmpty(t, wrapped.Error())
		})
	}
}

func TestAlreadyPostedIsStateTransition(t *testing.T) {
	assert.ErrorIs(t, apperrors.ErrAlreadyPosted, apperrors.ErrInvalidStateTransition)
}

func TestErrorsAsExposesPayload(t *testing.T) {
	err := fmt.Errorf("post: %w", &apperrors.ImbalancedEntryError{
		EntryID: "e1",
		Debits:  decimal.RequireFromString("500.00"),
		Credits: decimal.RequireFromString("499.99"),
	})

	var imbalanced *apperrors.ImbalancedEntryError
	if assert.ErrorAs(t, err, &imbalanced) {
		assert.True(t, imbalanced.Debits.Sub(imbalanced.Credits).Equal(decimal.RequireFromString("0.01")))
	}
}
