package pattern

import "context"

// Repository defines data access for work patterns. All methods take the
// organization qualifier to prevent cross-organization reads.
type Repository interface {
	Create(ctx context.Context, p WorkPattern) (WorkPattern, error)
	GetByID(ctx context.Context, id string, organizationID string) (WorkPattern, error)
	List(ctx context.Context, organizationID string) ([]WorkPattern, error)
	Update(ctx context.Context, p WorkPattern) error
	Delete(ctx context.Context, id string, organizationID string) error

	// ClearDefault unsets is_default on every pattern of the organization.
	// Used before promoting a new default so at most one exists.
	ClearDefault(ctx context.Context, organizationID string) error
}
