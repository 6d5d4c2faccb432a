package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/settings"
)

// Service manages organization attendance settings.
type Service struct {
	settingsRepo settings.Repository
}

func NewService(settingsRepo settings.Repository) *Service {
	return &Service{settingsRepo: settingsRepo}
}

// Get returns the organization's settings, or the documented defaults when
// the organization has never configured anything.
func (s *Service) Get(ctx context.Context, organizationID string) (settings.OrganizationSettings, error) {
	stored, err := s.settingsRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		if errors.Is(err, settings.ErrSettingsNotFound) {
			return settings.Defaults(organizationID), nil
		}
		return settings.OrganizationSettings{}, fmt.Errorf("failed to load organization settings: %w", err)
	}
	return stored, nil
}

// Update merges the request into the stored settings and persists the
// result. Absent request fields keep their stored values.
func (s *Service) Update(ctx context.Context, organizationID string, req settings.UpdateSettingsRequest) (settings.OrganizationSettings, error) {
	if err := req.Validate(); err != nil {
		return settings.OrganizationSettings{}, err
	}

	current, err := s.Get(ctx, organizationID)
	if err != nil {
		return settings.OrganizationSettings{}, err
	}

	merged := req.Apply(current)
	merged.UpdatedAt = time.Now().UTC()

	saved, err := s.settingsRepo.Upsert(ctx, merged)
	if err != nil {
		return settings.OrganizationSettings{}, fmt.Errorf("failed to save organization settings: %w", err)
	}

	return saved, nil
}
