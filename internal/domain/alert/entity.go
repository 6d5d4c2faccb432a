package alert

import "time"

// Kind identifies one alert type. Reminder and overtime kinds key on a staff
// member; the credential-expiry kind keys on a kiosk terminal; the daily
// report keys on the organization itself.
type Kind string

const (
	KindCheckInReminder  Kind = "checkin_reminder"
	KindCheckOutReminder Kind = "checkout_reminder"
	KindOvertime         Kind = "overtime"
	KindCredentialExpiry Kind = "credential_expiry"
	KindDailyReport      Kind = "daily_report"
)

// DispatchRecord is one row of the idempotency ledger. The
// (organization, subject, date, kind) quadruple is unique; a sweep that
// finds an existing row must not dispatch again.
type DispatchRecord struct {
	ID             string
	OrganizationID string
	SubjectID      string
	Date           time.Time
	Kind           Kind
	FiredAt        time.Time
}

// Payload is what the notification sink receives for one dispatched alert.
type Payload struct {
	OrganizationID string                 `json:"organization_id"`
	SubjectID      string                 `json:"subject_id"`
	Kind           Kind                   `json:"kind"`
	Date           string                 `json:"date"` // YYYY-MM-DD, organization-local
	Message        string                 `json:"message"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}
