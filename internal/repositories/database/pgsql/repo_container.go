package pgsql

import (
	portsrepo "github.com/Adams-ibr/Commodity-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        &BaseRepository{Pool: dbPool},
		CompanyRepo:      newPgxCompanyRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		JournalRepo:      newPgxJournalRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		InvoiceRepo:      newPgxInvoiceRepository(dbPool),
	}
}
