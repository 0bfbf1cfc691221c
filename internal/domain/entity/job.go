package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the stage an application is in. The set is open-ended; the
// constants below are the values the API documents.
type JobStatus string

const (
	JobStatusApplied   JobStatus = "applied"
	JobStatusInterview JobStatus = "interview"
	JobStatusOffer     JobStatus = "offer"
	JobStatusRejected  JobStatus = "rejected"
)

// DefaultJobStatus is assigned when a job is created without a status.
const DefaultJobStatus = JobStatusApplied

// Job is a single job application tracked by its owner.
type Job struct {
	ID          uuid.UUID  // The Global Unique Identifier (GUID) for the job.
	OwnerID     uuid.UUID  // The user who created the job. Only the owner can read or change it.
	CategoryID  *uuid.UUID // Optional reference to a shared category.
	Category    *Category  // Populated on reads when CategoryID is set.
	Title       string
	Company     string
	Location    string
	Description string
	Salary      *float64
	URL         string
	Notes       string
	Status      JobStatus
	DatePosted  time.Time // When the posting was published or the job was recorded.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether userID owns the job.
func (j *Job) IsOwnedBy(userID uuid.UUID) bool {
	return j != nil && j.OwnerID == userID
}
