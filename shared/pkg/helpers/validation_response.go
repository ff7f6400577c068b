package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationErrorResponse represents the validation error response format
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// LocaleTranslations holds error message translations for different locales
type LocaleTranslations struct {
	Required     string
	Min          string
	Max          string
	Month        string
	BikramDay    string
	GregorianDay string
	Locale       string
	DateNotExist string
	Invalid      string
}

// translations holds locale-specific translations
var translations = map[string]LocaleTranslations{
	"en": {
		Required:     "The %s field is required",
		Min:          "The %s field must be at least %s",
		Max:          "The %s field must not exceed %s",
		Month:        "The %s field must be a month between 1 and 12",
		BikramDay:    "The %s field must be a day between 1 and 32",
		GregorianDay: "The %s field is not a day of the given month",
		Locale:       "The %s field must be a supported locale",
		DateNotExist: "The date %s does not exist",
		Invalid:      "The %s field is invalid",
	},
	"ne": {
		Required:     "%s फिल्ड आवश्यक छ",
		Min:          "%s फिल्ड कम्तीमा %s हुनुपर्छ",
		Max:          "%s फिल्ड %s भन्दा बढी हुनु हुँदैन",
		Month:        "%s फिल्ड १ देखि १२ सम्मको महिना हुनुपर्छ",
		BikramDay:    "%s फिल्ड १ देखि ३२ सम्मको गते हुनुपर्छ",
		GregorianDay: "%s फिल्ड दिइएको महिनाको दिन होइन",
		Locale:       "%s फिल्ड समर्थित भाषा हुनुपर्छ",
		DateNotExist: "मिति %s अस्तित्वमा छैन",
		Invalid:      "%s फिल्ड अमान्य छ",
	},
}

// GetDefaultLocale returns the default locale
func GetDefaultLocale() string {
	return "en"
}

// GetLocaleTranslations returns translations for a given locale, or default locale if not found
func GetLocaleTranslations(locale string) LocaleTranslations {
	if t, ok := translations[locale]; ok {
		return t
	}
	return translations[GetDefaultLocale()]
}

// FormatValidationError formats a validator.FieldError into a localized error message
func FormatValidationError(fe validator.FieldError, locale string) string {
	t := GetLocaleTranslations(locale)
	fieldName := getFieldName(fe)

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(t.Required, fieldName)
	case "min":
		return fmt.Sprintf(t.Min, fieldName, fe.Param())
	case "max":
		return fmt.Sprintf(t.Max, fieldName, fe.Param())
	case "bs_month":
		return fmt.Sprintf(t.Month, fieldName)
	case "bs_day":
		return fmt.Sprintf(t.BikramDay, fieldName)
	case "gregorian_day":
		return fmt.Sprintf(t.GregorianDay, fieldName)
	case "locale":
		return fmt.Sprintf(t.Locale, fieldName)
	default:
		return fmt.Sprintf(t.Invalid, fieldName)
	}
}

// getFieldName extracts a human-readable field name from the FieldError
func getFieldName(fe validator.FieldError) string {
	fieldName := strings.ToLower(fe.Field())
	return strings.ReplaceAll(fieldName, "_", " ")
}

// WriteValidationErrorResponseFromMap writes a validation error response from a map of field errors
// This is useful when you have custom validation errors not from go-playground validator
func WriteValidationErrorResponseFromMap(w http.ResponseWriter, fieldErrors map[string]string, locale string) {
	message := FormatValidationErrorMessage(fieldErrors, locale)
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}
	writeValidationJSON(w, ValidationErrorResponse{Message: message, Errors: fieldErrors})
}

// WriteValidationErrorResponseFromString writes a validation error response from a single error message
// This creates a generic error response when you don't have field-specific errors
func WriteValidationErrorResponseFromString(w http.ResponseWriter, message string, locale string) {
	if message == "" {
		message = fmt.Sprintf(GetLocaleTranslations(locale).Invalid, "request")
	}
	writeValidationJSON(w, ValidationErrorResponse{Message: message, Errors: make(map[string]string)})
}

func writeValidationJSON(w http.ResponseWriter, response ValidationErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(response)
}
