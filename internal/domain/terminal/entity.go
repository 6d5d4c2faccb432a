package terminal

import "time"

// DeviceType classifies where a kiosk terminal is installed.
type DeviceType string

const (
	DeviceOffice DeviceType = "office"
	DeviceSite   DeviceType = "site"
)

var DeviceTypeValues = []string{
	string(DeviceOffice),
	string(DeviceSite),
}

// Terminal is an unattended kiosk device holding a rotating display
// credential. Exactly one token is valid per terminal at any instant.
type Terminal struct {
	ID             string
	OrganizationID string
	DeviceName     string
	DeviceType     DeviceType
	SiteID         *string

	AccessToken    string
	TokenExpiresAt time.Time

	RotationPeriodDays int

	IsActive       bool
	LastAccessedAt *time.Time
	CreatedBy      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenValidAt reports whether the terminal's credential is still inside its
// validity window at the given instant. The boundary itself is the last
// valid moment.
func (t Terminal) TokenValidAt(now time.Time) bool {
	return !now.After(t.TokenExpiresAt)
}
