package handler

import (
	"net/http"

	"nepdate/shared/pkg/helpers"
)

// writeValidationErrorWithLocale writes a 422 carrying a single message
func writeValidationErrorWithLocale(w http.ResponseWriter, message string, locale string) {
	helpers.WriteValidationErrorResponseFromString(w, message, locale)
}
