package helpers

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ValidationErrorData holds structured validation error information
type ValidationErrorData struct {
	Fields map[string]string `json:"fields"`
}

// EncodeValidationError encodes field validation errors into a JSON string
// This can be embedded in gRPC error messages for structured error handling
func EncodeValidationError(fields map[string]string) string {
	if len(fields) == 0 {
		return ""
	}

	jsonData, err := json.Marshal(ValidationErrorData{Fields: fields})
	if err != nil {
		return firstMessage(fields)
	}
	return string(jsonData)
}

// DecodeValidationError decodes a JSON string into field validation errors
// Returns the fields map and a boolean indicating if decoding was successful
func DecodeValidationError(errorMsg string) (map[string]string, bool) {
	var data ValidationErrorData
	if err := json.Unmarshal([]byte(errorMsg), &data); err == nil && len(data.Fields) > 0 {
		return data.Fields, true
	}
	return nil, false
}

// FormatValidationErrorMessage picks the message of the first field in
// alphabetical order so the result is stable.
func FormatValidationErrorMessage(fields map[string]string, locale string) string {
	if len(fields) == 0 {
		return fmt.Sprintf(GetLocaleTranslations(locale).Invalid, "request")
	}
	return firstMessage(fields)
}

// DateNotExistMessage is the localized message for a well-formed date that
// has no day in its calendar.
func DateNotExistMessage(date, locale string) string {
	return fmt.Sprintf(GetLocaleTranslations(locale).DateNotExist, date)
}

func firstMessage(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fields[keys[0]]
}
