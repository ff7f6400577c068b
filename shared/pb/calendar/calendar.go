// Package calendar defines the nepdate.calendar.v1.CalendarService contract
// shared by the calendar service and the HTTP gateway. Messages travel as
// JSON through the codec registered in codec.go.
package calendar

// GregorianRequest asks for the BS date of a Gregorian day.
type GregorianRequest struct {
	Year    int32  `json:"year" validate:"min=1,max=9999"`
	Month   int32  `json:"month" validate:"bs_month"`
	Day     int32  `json:"day" validate:"gregorian_day"`
	Format  string `json:"format,omitempty"`
	Unicode bool   `json:"unicode,omitempty"`
	Locale  string `json:"locale,omitempty" validate:"locale"`
}

// BikramRequest asks for the Gregorian date of a BS day.
type BikramRequest struct {
	Year    int32  `json:"year" validate:"min=1,max=9999"`
	Month   int32  `json:"month" validate:"bs_month"`
	Day     int32  `json:"day" validate:"bs_day"`
	Format  string `json:"format,omitempty"`
	Unicode bool   `json:"unicode,omitempty"`
	Locale  string `json:"locale,omitempty" validate:"locale"`
}

// MonthRequest names a BS month.
type MonthRequest struct {
	Year    int32  `json:"year" validate:"min=1,max=9999"`
	Month   int32  `json:"month" validate:"bs_month"`
	Unicode bool   `json:"unicode,omitempty"`
	Locale  string `json:"locale,omitempty" validate:"locale"`
}

// TodayRequest asks for the summary of the current day in a time zone.
// An empty Timezone means Asia/Kathmandu.
type TodayRequest struct {
	Timezone string `json:"timezone,omitempty"`
	Unicode  bool   `json:"unicode,omitempty"`
}

// DateResponse is a converted date. Method reports which strategy served
// the BS side of the conversion.
type DateResponse struct {
	Year        int32  `json:"year"`
	Month       int32  `json:"month"`
	Day         int32  `json:"day"`
	MonthName   string `json:"month_name"`
	Weekday     int32  `json:"weekday"`
	WeekdayName string `json:"weekday_name"`
	Method      string `json:"method"`
	Formatted   string `json:"formatted"`
}

type DaysInMonthResponse struct {
	Year   int32  `json:"year"`
	Month  int32  `json:"month"`
	Days   int32  `json:"days"`
	Method string `json:"method"`
}

type TodayResponse struct {
	Gregorian   *DateResponse `json:"gregorian"`
	Bikram      *DateResponse `json:"bikram"`
	DaysInMonth int32         `json:"days_in_month"`
	Jalali      string        `json:"jalali"`
	Timezone    string        `json:"timezone"`
}

// MonthDay is one day of a BS month with its Gregorian counterpart.
type MonthDay struct {
	Day       int32         `json:"day"`
	Gregorian *DateResponse `json:"gregorian"`
	Weekday   int32         `json:"weekday"`
}

type MonthCalendarResponse struct {
	Year      int32       `json:"year"`
	Month     int32       `json:"month"`
	MonthName string      `json:"month_name"`
	Method    string      `json:"method"`
	Days      []*MonthDay `json:"days"`
}
