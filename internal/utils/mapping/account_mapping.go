package mapping

import (
	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/Adams-ibr/Commodity-sub000/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		CompanyID:   d.CompanyID,
		Code:        d.Code,
		Name:        d.Name,
		AccountType: string(d.AccountType),
		Subtype:     toNullString(d.Subtype),
		ParentCode:  toNullString(d.ParentCode),
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		CompanyID:   m.CompanyID,
		Code:        m.Code,
		Name:        m.Name,
		AccountType: domain.AccountType(m.AccountType),
		Subtype:     m.Subtype.String,
		ParentCode:  m.ParentCode.String,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
