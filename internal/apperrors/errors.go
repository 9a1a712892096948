package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the request conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates the caller may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected failure in a lower layer.
var ErrInternal = errors.New("internal error")

// Ledger specific sentinels.
var (
	ErrImbalancedEntry        = errors.New("journal entry is not balanced")
	ErrLedgerImbalance        = errors.New("ledger is out of balance")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrAlreadyPosted          = fmt.Errorf("%w: journal entry is not a draft", ErrInvalidStateTransition)
	ErrNoRateAvailable        = errors.New("no exchange rate available")
	ErrInvalidPayment         = errors.New("invalid payment")
)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError. A nil err is replaced by ErrInternal so the
// result still matches errors.Is(err, ErrInternal).
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrDuplicate}
}

// ImbalancedEntryError is returned when a journal entry's debits and credits differ.
type ImbalancedEntryError struct {
	EntryID string
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *ImbalancedEntryError) Error() string {
	return fmt.Sprintf("%s: entry %s debits sum is %s and credits sum is %s",
		ErrImbalancedEntry, e.EntryID, e.Debits.String(), e.Credits.String())
}

func (e *ImbalancedEntryError) Unwrap() error { return ErrImbalancedEntry }

// LedgerImbalanceError signals a trial balance whose debit and credit columns differ.
// It always indicates a bookkeeping defect and is never tolerated.
type LedgerImbalanceError struct {
	CompanyID string
	AsOf      time.Time
	Debits    decimal.Decimal
	Credits   decimal.Decimal
}

func (e *LedgerImbalanceError) Error() string {
	return fmt.Sprintf("%s: company %s as of %s has debits %s and credits %s",
		ErrLedgerImbalance, e.CompanyID, e.AsOf.Format("2006-01-02"), e.Debits.String(), e.Credits.String())
}

func (e *LedgerImbalanceError) Unwrap() error { return ErrLedgerImbalance }

// InvalidStateTransitionError describes a rejected lifecycle move.
type InvalidStateTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s cannot move from %s to %s", ErrInvalidStateTransition, e.Entity, e.ID, e.From, e.To)
}

func (e *InvalidStateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// NoRateAvailableError is returned when neither the pair nor its inverse has a
// rate dated on or before the requested date.
type NoRateAvailableError struct {
	From string
	To   string
	Date time.Time
}

func (e *NoRateAvailableError) Error() string {
	return fmt.Sprintf("%s: %s to %s on or before %s", ErrNoRateAvailable, e.From, e.To, e.Date.Format("2006-01-02"))
}

func (e *NoRateAvailableError) Unwrap() error { return ErrNoRateAvailable }

// InvalidPaymentError rejects non-positive payments and overpayments.
type InvalidPaymentError struct {
	InvoiceID  string
	Amount     decimal.Decimal
	BalanceDue decimal.Decimal
	Reason     string
}

func (e *InvalidPaymentError) Error() string {
	return fmt.Sprintf("%s: invoice %s payment of %s: %s (balance due %s)",
		ErrInvalidPayment, e.InvoiceID, e.Amount.String(), e.Reason, e.BalanceDue.String())
}

func (e *InvalidPaymentError) Unwrap() error { return ErrInvalidPayment }
