package models

import (
	"time"

	"github.com/lib/pq"
)

// Project statuses.
const (
	StatusOpen       = "OPEN"
	StatusUpcoming   = "UPCOMING"
	StatusInProgress = "IN_PROGRESS"
	StatusClosed     = "CLOSED"
)

type Project struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	City        string    `db:"city" json:"city"`
	Country     string    `db:"country" json:"country"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
	Status      string    `db:"status" json:"status"`
	OwnerID     string    `db:"project_owner_id" json:"project_owner_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProjectMember holds one batch of invited emails. Invitees do not have to be
// registered users.
type ProjectMember struct {
	ID        string         `db:"id" json:"id"`
	ProjectID string         `db:"project_id" json:"project_id"`
	EmailIDs  pq.StringArray `db:"email_ids" json:"email_ids"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

type ProjectDocument struct {
	ID           string    `db:"id" json:"id"`
	ProjectID    string    `db:"project_id" json:"project_id"`
	DocumentPath string    `db:"document_path" json:"document_path"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ProjectInfo is the listing projection: project columns joined with the
// owner and the aggregated member emails and document paths.
type ProjectInfo struct {
	ID             string         `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Description    string         `db:"description" json:"description"`
	City           string         `db:"city" json:"city"`
	Country        string         `db:"country" json:"country"`
	StartDate      time.Time      `db:"start_date" json:"start_date"`
	EndDate        time.Time      `db:"end_date" json:"end_date"`
	Status         string         `db:"status" json:"status"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
	OwnerID        string         `db:"project_owner_id" json:"project_owner_id"`
	OwnerFirstName string         `db:"owner_first_name" json:"owner_first_name"`
	OwnerLastName  *string        `db:"owner_last_name" json:"owner_last_name"`
	OwnerEmail     string         `db:"owner_email" json:"owner_email"`
	OwnerUsername  string         `db:"owner_username" json:"owner_username"`
	MemberEmails   pq.StringArray `db:"member_emails" json:"member_emails"`
	DocumentPaths  pq.StringArray `db:"document_paths" json:"document_paths"`
}
