package validator

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var ErrInvalidPhone = errors.New("invalid phone number")

var phoneRegion atomic.Value

func init() {
	phoneRegion.Store("KZ")
}

// SetPhoneRegion sets the region used for numbers written without a country code.
func SetPhoneRegion(region string) {
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		return
	}
	phoneRegion.Store(region)
}

func PhoneRegion() string {
	return phoneRegion.Load().(string)
}

// NormalizePhone returns the number in E.164 form.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}
	num, err := phonenumbers.Parse(raw, PhoneRegion())
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizeOptionalPhone is NormalizePhone that maps a blank value to "",
// meaning no number on file.
func NormalizeOptionalPhone(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return NormalizePhone(raw)
}

// validatePhone accepts a blank value; pair it with required when a number must be given.
func validatePhone(fl validator.FieldLevel) bool {
	_, err := NormalizeOptionalPhone(fl.Field().String())
	return err == nil
}
