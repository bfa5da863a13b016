package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kopkas/coopledger/internal/core/domain"
)

// Registers the binding validations the request DTOs use.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", func(fl validator.FieldLevel) bool {
			return domain.ValidAccountCode(fl.Field().String())
		})
	}
}
