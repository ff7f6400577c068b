package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"nepdate/services/calendar-service/internal/models"
	"nepdate/services/calendar-service/internal/repository"
	"nepdate/shared/pkg/bikram"
	"nepdate/shared/pkg/helpers"
	"nepdate/shared/pkg/logger"
	"nepdate/shared/pkg/metrics"
)

// DefaultTimezone is used by Today when no location is given.
const DefaultTimezone = "Asia/Kathmandu"

// nepalTime is the fallback when the tz database is unavailable.
var nepalTime = time.FixedZone("NPT", 5*3600+45*60)

type CalendarService struct {
	converter *bikram.Converter
	cache     repository.CacheRepository
	metrics   *metrics.Metrics
	log       *logger.Logger
}

// Option configures a CalendarService
type Option func(*CalendarService)

// WithCache enables the conversion cache
func WithCache(cache repository.CacheRepository) Option {
	return func(s *CalendarService) { s.cache = cache }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *CalendarService) { s.metrics = m }
}

func WithLogger(l *logger.Logger) Option {
	return func(s *CalendarService) {
		if l != nil {
			s.log = l
		}
	}
}

func NewCalendarService(converter *bikram.Converter, opts ...Option) *CalendarService {
	if converter == nil {
		converter = bikram.New()
	}
	s := &CalendarService{
		converter: converter,
		log:       logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Converter returns the converter backing the service
func (s *CalendarService) Converter() *bikram.Converter {
	return s.converter
}

// ToBikram converts a Gregorian date to BS
func (s *CalendarService) ToBikram(ctx context.Context, year, month, day int) (*models.Conversion, error) {
	src := bikram.Date{Year: year, Month: month, Day: day}
	if conv, ok := s.cached(ctx, models.ToBikram, src); ok {
		return conv, nil
	}

	bs, err := s.converter.GregorianToBikram(year, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s to BS: %w", src, err)
	}

	conv := s.newConversion(models.ToBikram, src, bs)
	s.record(ctx, conv)
	return conv, nil
}

// ToGregorian converts a BS date to Gregorian
func (s *CalendarService) ToGregorian(ctx context.Context, year, month, day int) (*models.Conversion, error) {
	src := bikram.Date{Year: year, Month: month, Day: day}
	if conv, ok := s.cached(ctx, models.ToGregorian, src); ok {
		return conv, nil
	}

	g, err := s.converter.BikramToGregorian(year, month, day)
	if err != nil {
		return nil, fmt.Errorf("failed to convert BS %s: %w", src, err)
	}

	conv := s.newConversion(models.ToGregorian, src, g)
	s.record(ctx, conv)
	return conv, nil
}

// DaysInMonth returns the length of a BS month and the strategy that served it
func (s *CalendarService) DaysInMonth(ctx context.Context, year, month int) (int, bikram.Method, error) {
	n, err := s.converter.DaysInMonth(year, month)
	if err != nil {
		return 0, "", fmt.Errorf("failed to get days in %04d-%02d: %w", year, month, err)
	}
	return n, s.converter.Method(year), nil
}

// Today summarises the calendar day of now in loc. A nil loc means
// Asia/Kathmandu.
func (s *CalendarService) Today(ctx context.Context, now time.Time, loc *time.Location) (*models.TodaySummary, error) {
	if loc == nil {
		loc = NepalLocation()
	}
	local := now.In(loc)

	y, m, d := local.Date()
	conv, err := s.ToBikram(ctx, y, int(m), d)
	if err != nil {
		return nil, err
	}

	bs := conv.Bikram()
	days, method, err := s.DaysInMonth(ctx, bs.Year, bs.Month)
	if err != nil {
		return nil, err
	}

	return &models.TodaySummary{
		Gregorian:   conv.Gregorian(),
		Bikram:      bs,
		Weekday:     local.Weekday(),
		DaysInMonth: days,
		Method:      method,
		Jalali:      helpers.FormatJalaliDate(local),
		Location:    loc,
	}, nil
}

// MonthCalendar lists every day of a BS month with its Gregorian date
func (s *CalendarService) MonthCalendar(ctx context.Context, year, month int) ([]models.MonthDay, bikram.Method, error) {
	days, method, err := s.DaysInMonth(ctx, year, month)
	if err != nil {
		return nil, "", err
	}

	first, err := s.converter.BikramToGregorian(year, month, 1)
	if err != nil {
		return nil, "", fmt.Errorf("failed to convert BS %04d-%02d-01: %w", year, month, err)
	}
	start := time.Date(first.Year, time.Month(first.Month), first.Day, 0, 0, 0, 0, time.UTC)

	out := make([]models.MonthDay, 0, days)
	for i := 0; i < days; i++ {
		t := start.AddDate(0, 0, i)
		out = append(out, models.MonthDay{
			Bikram:    bikram.Date{Year: year, Month: month, Day: i + 1},
			Gregorian: bikram.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()},
			Weekday:   t.Weekday(),
		})
	}
	return out, method, nil
}

func (s *CalendarService) cached(ctx context.Context, dir models.Direction, src bikram.Date) (*models.Conversion, bool) {
	if s.cache == nil {
		return nil, false
	}

	conv, found, err := s.cache.GetConversion(ctx, dir, src)
	switch {
	case err != nil:
		s.log.WithError(err).WithField("key", repository.ConversionKey(dir, src)).Warn("conversion cache lookup failed")
		s.cacheLookup("error")
		return nil, false
	case !found:
		s.cacheLookup("miss")
		return nil, false
	}

	s.cacheLookup("hit")
	s.conversion(conv)
	return conv, true
}

func (s *CalendarService) record(ctx context.Context, conv *models.Conversion) {
	s.conversion(conv)
	if s.cache == nil {
		return
	}
	if err := s.cache.SetConversion(ctx, conv); err != nil {
		s.log.WithError(err).WithField("key", repository.ConversionKey(conv.Direction, conv.Source)).Warn("failed to cache conversion")
	}
}

// newConversion fills in the weekday of the Gregorian side and the strategy
// serving the BS side.
func (s *CalendarService) newConversion(dir models.Direction, src, result bikram.Date) *models.Conversion {
	conv := &models.Conversion{Direction: dir, Source: src, Result: result}
	conv.Weekday = weekdayOf(conv.Gregorian())
	conv.Method = s.converter.Method(conv.Bikram().Year)
	return conv
}

func (s *CalendarService) conversion(conv *models.Conversion) {
	if s.metrics != nil {
		s.metrics.RecordConversion(string(conv.Direction), string(conv.Method))
	}
}

func (s *CalendarService) cacheLookup(result string) {
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(result)
	}
}

func weekdayOf(d bikram.Date) time.Weekday {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

// NepalLocation returns Asia/Kathmandu, or a fixed +05:45 zone when the
// tz database is missing.
func NepalLocation() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return nepalTime
	}
	return loc
}

// BuildTable turns stored years into a month table. Years must start at
// bikram.EpochYear and be contiguous.
func BuildTable(years []models.CalendarYear) (*bikram.Table, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("no calendar years")
	}

	sorted := make([]models.CalendarYear, len(years))
	copy(sorted, years)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	if sorted[0].Year != bikram.EpochYear {
		return nil, fmt.Errorf("calendar years start at %d, expected %d", sorted[0].Year, bikram.EpochYear)
	}

	rows := make([][13]int, 0, len(sorted))
	for i, y := range sorted {
		if want := bikram.EpochYear + i; y.Year != want {
			return nil, fmt.Errorf("calendar year %d missing", want)
		}
		rows = append(rows, y.Row())
	}

	return bikram.NewTable(rows)
}

// SeedYears returns the compiled-in month table as storable rows
func SeedYears() []models.CalendarYear {
	t := bikram.DefaultTable()
	years := make([]models.CalendarYear, 0, t.Years())
	for y := bikram.EpochYear; y <= t.LastYear(); y++ {
		row, _ := t.Row(y)
		cy := models.CalendarYear{Year: y, TotalDays: row[12]}
		copy(cy.Months[:], row[:12])
		years = append(years, cy)
	}
	return years
}

// LoadTable reads the month table from the database, seeding it first when
// seed is set. It returns nil when the table is empty so callers keep the
// compiled-in table.
func LoadTable(ctx context.Context, repo repository.CalendarRepositoryInterface, seed bool) (*bikram.Table, error) {
	if seed {
		if err := repo.SaveYears(ctx, SeedYears()); err != nil {
			return nil, fmt.Errorf("failed to seed calendar years: %w", err)
		}
	}

	years, err := repo.ListYears(ctx)
	if err != nil {
		return nil, err
	}
	if len(years) == 0 {
		return nil, nil
	}
	return BuildTable(years)
}
