package repositories

import (
	"context"
)

// TransactionManager runs units of work atomically.
//
// WithinCompanyTx executes fn inside one transaction that holds the company's
// write lock, so mutating ledger operations for the same company are
// serialized. Repositories called with the ctx handed to fn take part in that
// transaction. A nested call for the same company joins the outer transaction.
// If fn returns an error every write made through the ctx is rolled back.
//
// AfterCommit registers fn to run once the outermost transaction carried by ctx
// commits. Outside a transaction fn runs immediately. Hooks never run after a
// rollback.
type TransactionManager interface {
	WithinCompanyTx(ctx context.Context, companyID string, fn func(ctx context.Context) error) error
	AfterCommit(ctx context.Context, fn func())
}
