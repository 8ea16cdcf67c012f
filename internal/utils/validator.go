package utils

import (
	"errors"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"
)

// Validator bundles struct validation, string sanitizing and email verification.
type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
}

var instance *Validator
var once sync.Once
var configuration *truemail.Configuration
var sanitizePolicy = bluemonday.StrictPolicy()

// GetValidator returns the process-wide validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "team@adopt-a-school.org",
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: verifyEmail,
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func verifyEmail(email string) bool {
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *validator.Validate) {
	if err := v.RegisterValidation("latitude_range", latitudeValidation); err != nil {
		return
	}

	if err := v.RegisterValidation("longitude_range", longitudeValidation); err != nil {
		return
	}
}

func latitudeValidation(fl validator.FieldLevel) bool {
	latitude := fl.Field().Float()
	return latitude >= -90 && latitude <= 90
}

func longitudeValidation(fl validator.FieldLevel) bool {
	longitude := fl.Field().Float()
	return longitude >= -180 && longitude <= 180
}

// SanitizeData strips markup from every string field of the given struct pointer.
func (v *Validator) SanitizeData(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return errors.New("payload is not a struct pointer")
	}

	elem := value.Elem()
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		if field.Kind() == reflect.String && field.CanSet() {
			field.SetString(sanitizePolicy.Sanitize(field.String()))
		}
	}

	return nil
}
