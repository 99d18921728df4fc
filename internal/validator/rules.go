package validator

import (
	"log"

	"github.com/go-playground/validator/v10"

	"tailorix_backend/internal/models"
)

// registerCustomRules installs the application's custom validation tags.
// A registration failure is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("user_role", validateUserRole)
	mustRegister("subscription_tier", validateSubscriptionTier)
}

// Empty values pass; pair with 'required' when the field is mandatory.
func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.UserRole(value) {
	case models.UserRoleCustomer, models.UserRoleTailor:
		return true
	default:
		// Admin accounts are provisioned out of band, never via register.
		return false
	}
}

func validateSubscriptionTier(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.SubscriptionTier(value) {
	case models.TierBasic, models.TierSilver, models.TierGold:
		return true
	default:
		return false
	}
}
