package settings

import (
	"context"
	"time"
)

// Repository defines data access for organization attendance settings.
type Repository interface {
	GetByOrganization(ctx context.Context, organizationID string) (OrganizationSettings, error)
	ListAll(ctx context.Context) ([]OrganizationSettings, error)
	Upsert(ctx context.Context, s OrganizationSettings) (OrganizationSettings, error)
}

// HolidayRepository is the external public-holiday lookup. The engine never
// infers holiday contents; an authoritative calendar backs this store.
type HolidayRepository interface {
	IsHoliday(ctx context.Context, date time.Time) (bool, error)
	ListByRange(ctx context.Context, from, to time.Time) (map[string]string, error) // date "2006-01-02" -> name
}
