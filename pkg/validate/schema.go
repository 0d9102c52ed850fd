package validate

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Struct tags registered by NewSchema.
const (
	TagNonBlank        = "nonblank"
	TagLooseEmail      = "looseemail"
	TagLoosePhone      = "loosephone"
	TagMinRunes        = "minrunes"
	TagPartnershipType = "partnershiptype"
	TagInterestArea    = "interestarea"
)

// NewSchema returns a validator instance with the intake field rules registered as struct tags.
// Field errors are reported under their json names.
func NewSchema() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, TagNonBlank, func(fl validator.FieldLevel) bool {
		return IsNonEmpty(fl.Field().String())
	})
	mustRegister(v, TagLooseEmail, func(fl validator.FieldLevel) bool {
		return IsValidEmail(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, TagLoosePhone, func(fl validator.FieldLevel) bool {
		phone := fl.Field().String()
		return !IsNonEmpty(phone) || IsValidPhone(strings.TrimSpace(phone))
	})
	mustRegister(v, TagMinRunes, func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return HasMinLength(fl.Field().String(), n)
	})
	mustRegister(v, TagPartnershipType, func(fl validator.FieldLevel) bool {
		return IsPartnershipType(strings.TrimSpace(fl.Field().String()))
	})
	mustRegister(v, TagInterestArea, func(fl validator.FieldLevel) bool {
		area := strings.TrimSpace(fl.Field().String())
		return area == "" || IsInterestArea(area)
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic("register " + tag + ": " + err.Error())
	}
}
