package handler

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	calendarpb "nepdate/shared/pb/calendar"
	"nepdate/shared/pkg/helpers"
)

type CalendarHandler struct {
	calendarClient calendarpb.CalendarServiceClient
	locale         string
}

func NewCalendarHandler(client calendarpb.CalendarServiceClient, locale string) *CalendarHandler {
	if locale == "" {
		locale = helpers.GetDefaultLocale()
	}
	return &CalendarHandler{
		calendarClient: client,
		locale:         locale,
	}
}

// Routes maps each route pattern to its handler
func (h *CalendarHandler) Routes() map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		"/api/calendar/tobs":  h.ToBikram,
		"/api/calendar/toad":  h.ToGregorian,
		"/api/calendar/days":  h.DaysInMonth,
		"/api/calendar/today": h.Today,
		"/api/calendar/month": h.MonthCalendar,
	}
}

// ToBikram handles GET /api/calendar/tobs
// Query params: date (YYYY-MM-DD) or year, month, day; format, unicode, locale
func (h *CalendarHandler) ToBikram(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	locale := h.localeOf(r)
	year, month, day, fields := parseDate(q, locale)
	if len(fields) > 0 {
		helpers.WriteValidationErrorResponseFromMap(w, fields, locale)
		return
	}

	resp, err := h.calendarClient.ToBikram(r.Context(), &calendarpb.GregorianRequest{
		Year:    year,
		Month:   month,
		Day:     day,
		Format:  q.Get("format"),
		Unicode: parseBool(q.Get("unicode")),
		Locale:  locale,
	})
	if err != nil {
		writeGRPCError(w, err, locale)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": resp})
}

// ToGregorian handles GET /api/calendar/toad
// Query params: date (YYYY-MM-DD) or year, month, day; format, unicode, locale
func (h *CalendarHandler) ToGregorian(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	locale := h.localeOf(r)
	year, month, day, fields := parseDate(q, locale)
	if len(fields) > 0 {
		helpers.WriteValidationErrorResponseFromMap(w, fields, locale)
		return
	}

	resp, err := h.calendarClient.ToGregorian(r.Context(), &calendarpb.BikramRequest{
		Year:    year,
		Month:   month,
		Day:     day,
		Format:  q.Get("format"),
		Unicode: parseBool(q.Get("unicode")),
		Locale:  locale,
	})
	if err != nil {
		writeGRPCError(w, err, locale)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": resp})
}

// DaysInMonth handles GET /api/calendar/days?year=&month=
func (h *CalendarHandler) DaysInMonth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, fields := h.monthRequest(r)
	if len(fields) > 0 {
		helpers.WriteValidationErrorResponseFromMap(w, fields, req.Locale)
		return
	}

	resp, err := h.calendarClient.DaysInMonth(r.Context(), req)
	if err != nil {
		writeGRPCError(w, err, req.Locale)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": resp})
}

// Today handles GET /api/calendar/today?tz=&unicode=
func (h *CalendarHandler) Today(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	resp, err := h.calendarClient.Today(r.Context(), &calendarpb.TodayRequest{
		Timezone: q.Get("tz"),
		Unicode:  parseBool(q.Get("unicode")),
	})
	if err != nil {
		writeGRPCError(w, err, h.localeOf(r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": resp})
}

// MonthCalendar handles GET /api/calendar/month?year=&month=
func (h *CalendarHandler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	req, fields := h.monthRequest(r)
	if len(fields) > 0 {
		helpers.WriteValidationErrorResponseFromMap(w, fields, req.Locale)
		return
	}

	resp, err := h.calendarClient.MonthCalendar(r.Context(), req)
	if err != nil {
		writeGRPCError(w, err, req.Locale)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": resp})
}

func (h *CalendarHandler) monthRequest(r *http.Request) (*calendarpb.MonthRequest, map[string]string) {
	q := r.URL.Query()
	locale := h.localeOf(r)
	fields := make(map[string]string)

	year := parseField(q, "year", locale, fields)
	month := parseField(q, "month", locale, fields)

	return &calendarpb.MonthRequest{
		Year:    year,
		Month:   month,
		Unicode: parseBool(q.Get("unicode")),
		Locale:  locale,
	}, fields
}

// localeOf picks the locale query param, then Accept-Language, then the
// gateway default.
func (h *CalendarHandler) localeOf(r *http.Request) string {
	if l := r.URL.Query().Get("locale"); l != "" {
		return l
	}
	if al := r.Header.Get("Accept-Language"); strings.HasPrefix(strings.ToLower(al), "ne") {
		return "ne"
	}
	return h.locale
}

// parseDate reads either date=YYYY-MM-DD or separate year, month and day
// params. Devanagari digits are accepted.
func parseDate(q url.Values, locale string) (year, month, day int32, fields map[string]string) {
	fields = make(map[string]string)

	if date := q.Get("date"); date != "" {
		parts := strings.FieldsFunc(helpers.NormalizeDigits(date), func(r rune) bool { return r == '-' || r == '/' })
		if len(parts) != 3 {
			fields["date"] = fmt.Sprintf(helpers.GetLocaleTranslations(locale).Invalid, "date")
			return 0, 0, 0, fields
		}
		vals := url.Values{"year": {parts[0]}, "month": {parts[1]}, "day": {parts[2]}}
		return parseField(vals, "year", locale, fields), parseField(vals, "month", locale, fields), parseField(vals, "day", locale, fields), fields
	}

	year = parseField(q, "year", locale, fields)
	month = parseField(q, "month", locale, fields)
	day = parseField(q, "day", locale, fields)
	return year, month, day, fields
}

func parseField(q url.Values, name, locale string, fields map[string]string) int32 {
	raw := q.Get(name)
	if raw == "" {
		fields[name] = fmt.Sprintf(helpers.GetLocaleTranslations(locale).Required, name)
		return 0
	}
	v, err := helpers.ParseInt(raw)
	if err != nil || v < math.MinInt32 || v > math.MaxInt32 {
		fields[name] = fmt.Sprintf(helpers.GetLocaleTranslations(locale).Invalid, name)
		return 0
	}
	return int32(v)
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeGRPCError(w http.ResponseWriter, err error, locale string) {
	st, ok := status.FromError(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch st.Code() {
	case codes.InvalidArgument:
		if fields, ok := helpers.DecodeValidationError(st.Message()); ok {
			helpers.WriteValidationErrorResponseFromMap(w, fields, locale)
			return
		}
		writeValidationErrorWithLocale(w, st.Message(), locale)
	case codes.NotFound:
		writeError(w, http.StatusNotFound, st.Message())
	case codes.Unimplemented:
		writeError(w, http.StatusNotImplemented, st.Message())
	case codes.Unavailable:
		writeError(w, http.StatusServiceUnavailable, "calendar service unavailable")
	case codes.DeadlineExceeded:
		writeError(w, http.StatusGatewayTimeout, st.Message())
	default:
		writeError(w, http.StatusInternalServerError, st.Message())
	}
}
