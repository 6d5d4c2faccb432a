package pattern

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/pattern"
	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/staff"
	"github.com/cmlabs-hris/attendance-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-engine-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service manages work patterns. Default promotion runs transactionally so
// at most one default exists per organization at any point.
type Service struct {
	patternRepo pattern.Repository
	profileRepo staff.ProfileRepository

	// runTx executes fn with a transaction bound to the context.
	runTx func(ctx context.Context, fn func(txCtx context.Context) error) error
}

func NewService(db *database.DB, patternRepo pattern.Repository, profileRepo staff.ProfileRepository) *Service {
	return &Service{
		patternRepo: patternRepo,
		profileRepo: profileRepo,
		runTx: func(ctx context.Context, fn func(txCtx context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, func(tx pgx.Tx) error {
				return fn(context.WithValue(ctx, "tx", tx))
			})
		},
	}
}

func (s *Service) Create(ctx context.Context, organizationID string, req pattern.CreateWorkPatternRequest) (pattern.WorkPattern, error) {
	if err := req.Validate(); err != nil {
		return pattern.WorkPattern{}, err
	}

	p, err := req.ToEntity()
	if err != nil {
		return pattern.WorkPattern{}, err
	}
	p.ID = uuid.NewString()
	p.OrganizationID = organizationID
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if !p.IsDefault {
		created, err := s.patternRepo.Create(ctx, p)
		if err != nil {
			return pattern.WorkPattern{}, fmt.Errorf("failed to create work pattern: %w", err)
		}
		return created, nil
	}

	var created pattern.WorkPattern
	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.patternRepo.ClearDefault(txCtx, organizationID); err != nil {
			return fmt.Errorf("failed to clear default pattern: %w", err)
		}
		created, err = s.patternRepo.Create(txCtx, p)
		if err != nil {
			return fmt.Errorf("failed to create work pattern: %w", err)
		}
		return nil
	})
	if err != nil {
		return pattern.WorkPattern{}, err
	}

	return created, nil
}

func (s *Service) GetByID(ctx context.Context, id, organizationID string) (pattern.WorkPattern, error) {
	return s.patternRepo.GetByID(ctx, id, organizationID)
}

func (s *Service) List(ctx context.Context, organizationID string) ([]pattern.WorkPattern, error) {
	patterns, err := s.patternRepo.List(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work patterns: %w", err)
	}
	return patterns, nil
}

func (s *Service) Update(ctx context.Context, id, organizationID string, req pattern.UpdateWorkPatternRequest) (pattern.WorkPattern, error) {
	if err := req.Validate(); err != nil {
		return pattern.WorkPattern{}, err
	}

	existing, err := s.patternRepo.GetByID(ctx, id, organizationID)
	if err != nil {
		return pattern.WorkPattern{}, err
	}

	p, err := req.ToEntity()
	if err != nil {
		return pattern.WorkPattern{}, err
	}
	p.ID = existing.ID
	p.OrganizationID = existing.OrganizationID
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()

	promotingDefault := !existing.IsDefault && p.IsDefault

	if !promotingDefault {
		if err := s.patternRepo.Update(ctx, p); err != nil {
			return pattern.WorkPattern{}, fmt.Errorf("failed to update work pattern: %w", err)
		}
		return p, nil
	}

	err = s.runTx(ctx, func(txCtx context.Context) error {
		if err := s.patternRepo.ClearDefault(txCtx, organizationID); err != nil {
			return fmt.Errorf("failed to clear default pattern: %w", err)
		}
		if err := s.patternRepo.Update(txCtx, p); err != nil {
			return fmt.Errorf("failed to update work pattern: %w", err)
		}
		return nil
	})
	if err != nil {
		return pattern.WorkPattern{}, err
	}

	return p, nil
}

// Delete removes a work pattern. Deletion is refused while any staff
// profile still references it.
func (s *Service) Delete(ctx context.Context, id, organizationID string) error {
	if _, err := s.patternRepo.GetByID(ctx, id, organizationID); err != nil {
		return err
	}

	count, err := s.profileRepo.CountByPattern(ctx, id, organizationID)
	if err != nil {
		return fmt.Errorf("failed to count pattern references: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: referenced by %d staff profile(s)", pattern.ErrPatternInUse, count)
	}

	if err := s.patternRepo.Delete(ctx, id, organizationID); err != nil {
		return fmt.Errorf("failed to delete work pattern: %w", err)
	}

	return nil
}
