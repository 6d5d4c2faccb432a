package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
)

// holidayRepositoryImpl reads the public-holiday calendar. The table is
// populated by an external import; this layer only looks dates up.
type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) settings.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

// IsHoliday implements settings.HolidayRepository.
func (r *holidayRepositoryImpl) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT EXISTS (
			SELECT 1 FROM public_holidays WHERE date = $1
		)
	`
	var exists bool
	if err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListByRange implements settings.HolidayRepository.
func (r *holidayRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) (map[string]string, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT date, name
		FROM public_holidays
		WHERE date BETWEEN $1 AND $2
		ORDER BY date
	`
	rows, err := q.Query(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holidays := make(map[string]string)
	for rows.Next() {
		var date time.Time
		var name string
		if err := rows.Scan(&date, &name); err != nil {
			return nil, err
		}
		holidays[date.Format("2006-01-02")] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return holidays, nil
}
