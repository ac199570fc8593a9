package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Contact is a message submitted through the public contact form.
// Leads are append-only from the visitor's side; only the admin deletes
// them.
type Contact struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type JoinRole string

const (
	JoinRoleLabeler  JoinRole = "labeler"
	JoinRoleProvider JoinRole = "provider"
)

// JoinRequest is a network application. The role tag selects which of the
// two detail variants is populated; the shared base (name, email, skills)
// is always present.
type JoinRequest struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Skills    string
	Role      JoinRole
	Labeler   *LabelerDetails
	Provider  *ProviderDetails
	CreatedAt time.Time
}

type LabelerDetails struct {
	Experience   string
	Availability string
	HourlyRate   sql.NullFloat64
}

type ProviderDetails struct {
	Company            string
	DataTypes          []string
	ProjectDescription string
}
