package handlers

import (
	"fmt"
	"sync"

	"github.com/Adams-ibr/Commodity-sub000/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the ledger's custom binding tags to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		if err = v.RegisterValidation("accountcode", validateAccountCode); err != nil {
			return
		}
		err = v.RegisterValidation("currencycode", validateCurrencyCode)
	})
	return err
}

func validateAccountCode(fl validator.FieldLevel) bool {
	return domain.IsValidAccountCode(fl.Field().String())
}

// validateCurrencyCode accepts three ASCII letters in either case.
func validateCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}
