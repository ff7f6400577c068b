package helpers

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps go-playground validator with calendar rules
type CustomValidator struct {
	validate *validator.Validate
}

// NewCustomValidator creates a new custom validator with calendar rules
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("bs_month", validateMonth)
	v.RegisterValidation("bs_day", validateBikramDay)
	v.RegisterValidation("gregorian_day", validateGregorianDay)
	v.RegisterValidation("locale", validateLocale)

	return &CustomValidator{validate: v}
}

// Validate validates a struct
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validate.Struct(i)
}

// validateMonth accepts months 1..12
func validateMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}

// validateBikramDay accepts the widest BS day range, 1..32. Whether the day
// exists in its month is decided by the converter.
func validateBikramDay(fl validator.FieldLevel) bool {
	d := fl.Field().Int()
	return d >= 1 && d <= 32
}

// validateGregorianDay checks the day against the Year and Month fields of
// the same struct, so 29 February only passes in leap years.
func validateGregorianDay(fl validator.FieldLevel) bool {
	day := int(fl.Field().Int())
	year, ok := siblingInt(fl.Parent(), "Year")
	if !ok {
		return false
	}
	month, ok := siblingInt(fl.Parent(), "Month")
	if !ok || month < 1 || month > 12 || day < 1 {
		return false
	}
	return day <= time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func validateLocale(fl validator.FieldLevel) bool {
	_, ok := translations[fl.Field().String()]
	return ok || fl.Field().String() == ""
}

func siblingInt(parent reflect.Value, name string) (int, bool) {
	for parent.Kind() == reflect.Ptr {
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return 0, false
	}
	f := parent.FieldByName(name)
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(f.Int()), true
	}
	return 0, false
}

// FieldErrors converts validator errors into a field → message map using
// the json names of the fields.
func FieldErrors(err error, locale string) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[getFieldName(fe)] = FormatValidationError(fe, locale)
	}
	return fields
}
