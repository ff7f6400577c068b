package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"nepdate/services/calendar-service/internal/models"
	"nepdate/shared/pkg/db"
)

const yearsTable = "bs_calendar_years"

// CalendarYearsSchema is the expected layout of bs_calendar_years
var CalendarYearsSchema = db.TableSchema{
	Name:    yearsTable,
	Columns: yearColumns(),
}

func yearColumns() []db.ColumnType {
	cols := []db.ColumnType{{Name: "year", DataType: "smallint"}}
	for i := 1; i <= 12; i++ {
		cols = append(cols, db.ColumnType{Name: fmt.Sprintf("m%d", i), DataType: "tinyint"})
	}
	return append(cols, db.ColumnType{Name: "total_days", DataType: "smallint"})
}

var (
	monthList   = columnList()
	selectYears = "SELECT year, " + monthList + ", total_days FROM " + yearsTable + " ORDER BY year"
	upsertYear  = "INSERT INTO " + yearsTable + " (year, " + monthList + ", total_days) VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", 14), ", ") + ") ON DUPLICATE KEY UPDATE " + updateList()
)

func createTableSQL() string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS " + yearsTable + " (\n")
	b.WriteString("\tyear SMALLINT NOT NULL PRIMARY KEY,\n")
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&b, "\tm%d TINYINT UNSIGNED NOT NULL,\n", i)
	}
	b.WriteString("\ttotal_days SMALLINT UNSIGNED NOT NULL\n")
	b.WriteString(") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4")
	return b.String()
}

func columnList() string {
	names := make([]string, 12)
	for i := range names {
		names[i] = fmt.Sprintf("m%d", i+1)
	}
	return strings.Join(names, ", ")
}

func updateList() string {
	names := make([]string, 0, 13)
	for i := 1; i <= 12; i++ {
		names = append(names, fmt.Sprintf("m%d = VALUES(m%d)", i, i))
	}
	names = append(names, "total_days = VALUES(total_days)")
	return strings.Join(names, ", ")
}

// CalendarRepositoryInterface defines the interface for calendar repository operations
type CalendarRepositoryInterface interface {
	ListYears(ctx context.Context) ([]models.CalendarYear, error)
	SaveYears(ctx context.Context, years []models.CalendarYear) error
	CheckSchema(ctx context.Context) error
	CreateTable(ctx context.Context) error
}

type CalendarRepository struct {
	db *sql.DB
}

func NewCalendarRepository(db *sql.DB) *CalendarRepository {
	return &CalendarRepository{db: db}
}

// ListYears returns every stored year in ascending order
func (r *CalendarRepository) ListYears(ctx context.Context) ([]models.CalendarYear, error) {
	rows, err := r.db.QueryContext(ctx, selectYears)
	if err != nil {
		return nil, fmt.Errorf("failed to query calendar years: %w", err)
	}
	defer rows.Close()

	var years []models.CalendarYear
	for rows.Next() {
		var y models.CalendarYear
		dest := make([]interface{}, 0, 14)
		dest = append(dest, &y.Year)
		for i := range y.Months {
			dest = append(dest, &y.Months[i])
		}
		dest = append(dest, &y.TotalDays)

		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan calendar year: %w", err)
		}
		years = append(years, y)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read calendar years: %w", err)
	}

	return years, nil
}

// SaveYears upserts years in a single transaction
func (r *CalendarRepository) SaveYears(ctx context.Context, years []models.CalendarYear) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertYear)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, y := range years {
		args := make([]interface{}, 0, 14)
		args = append(args, y.Year)
		for _, m := range y.Months {
			args = append(args, m)
		}
		args = append(args, y.TotalDays)

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to save year %d: %w", y.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit calendar years: %w", err)
	}
	return nil
}

// CheckSchema verifies bs_calendar_years has the expected columns
func (r *CalendarRepository) CheckSchema(ctx context.Context) error {
	return db.NewSchemaGuard(r.db).ValidateTable(ctx, CalendarYearsSchema)
}

// CreateTable creates bs_calendar_years when it does not exist
func (r *CalendarRepository) CreateTable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTableSQL()); err != nil {
		return fmt.Errorf("failed to create %s: %w", yearsTable, err)
	}
	return nil
}
