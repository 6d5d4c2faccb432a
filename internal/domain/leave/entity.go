package leave

import "time"

// Type classifies a leave day.
type Type string

const (
	TypePaid     Type = "paid"
	TypeSick     Type = "sick"
	TypePersonal Type = "personal"
	TypeOther    Type = "other"
)

var TypeValues = []string{
	string(TypePaid),
	string(TypeSick),
	string(TypePersonal),
	string(TypeOther),
}

// Record is one leave day for one staff member. At most one record exists
// per (staff, date).
type Record struct {
	ID             string
	OrganizationID string
	StaffID        string
	Date           time.Time
	Type           Type
	Reason         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
