package mapping

import (
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
)

func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:          d.CompanyID,
		Name:               d.Name,
		FunctionalCurrency: d.FunctionalCurrency,
		CashAccount:        d.PostingAccounts.Cash,
		ReceivableAccount:  d.PostingAccounts.Receivable,
		PayableAccount:     d.PostingAccounts.Payable,
		RevenueAccount:     d.PostingAccounts.Revenue,
		ExpenseAccount:     d.PostingAccounts.Expense,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:          m.CompanyID,
		Name:               m.Name,
		FunctionalCurrency: m.FunctionalCurrency,
		PostingAccounts: domain.PostingAccounts{
			Cash:       m.CashAccount,
			Receivable: m.ReceivableAccount,
			Payable:    m.PayableAccount,
			Revenue:    m.RevenueAccount,
			Expense:    m.ExpenseAccount,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
