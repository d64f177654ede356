package router

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/peds-protocol-api/internal/service/assessment"
)

// registerValidations installs the clinical range checks on gin's binding
// validator so malformed payloads are rejected before they reach a service.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("pedsweight", func(fl validator.FieldLevel) bool {
		w := fl.Field().Float()
		return w >= assessment.MinWeightKg && w <= assessment.MaxWeightKg
	})
	_ = v.RegisterValidation("pedsage", func(fl validator.FieldLevel) bool {
		a := fl.Field().Float()
		return a >= 0 && a <= assessment.MaxAgeYears
	})
}
