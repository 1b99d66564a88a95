package validators

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/airsense/platform/internal/policy"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// New returns the shared request validator. The custom tags delegate to the
// policy package so the HTTP layer and the services enforce the same rules.
func New() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		_ = v.RegisterValidation("es_mobile", func(fl validator.FieldLevel) bool {
			return policy.ValidTelephone(fl.Field().String())
		})
		_ = v.RegisterValidation("password_strength", func(fl validator.FieldLevel) bool {
			return policy.ValidPassword(fl.Field().String())
		})
		instance = v
	})
	return instance
}
