package models

import (
	"fmt"
	"time"
)

// Video job statuses as recorded locally.
const (
	JobStatusSubmitted = "submitted"
	JobStatusAnalyzing = "analyzing"
	JobStatusComplete  = "complete"
	JobStatusFailed    = "failed"
	JobStatusAborted   = "aborted"
)

var _ Model = (*VideoJob)(nil)

// VideoJob records a video submission (file upload or URL) made through this client.
//
// The backend owns the job's real lifecycle; this entity is local bookkeeping
// so past submissions can be listed without a network call.
type VideoJob struct {
	id        string
	sequence  int
	source    string // file path or URL handed to the backend
	remoteID  string // backend job identifier, empty until acknowledged
	status    string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewVideoJob creates a VideoJob for the given source with status submitted.
func NewVideoJob(sequence int, source string) *VideoJob {
	now := time.Now()
	return &VideoJob{
		sequence:  sequence,
		source:    source,
		status:    JobStatusSubmitted,
		createdAt: now,
		updatedAt: now,
	}
}

func (j *VideoJob) ID() string            { return j.id }
func (j *VideoJob) Sequence() int         { return j.sequence }
func (j *VideoJob) Source() string        { return j.source }
func (j *VideoJob) RemoteID() string      { return j.remoteID }
func (j *VideoJob) Status() string        { return j.status }
func (j *VideoJob) CreatedAt() time.Time  { return j.createdAt }
func (j *VideoJob) UpdatedAt() time.Time  { return j.updatedAt }
func (j *VideoJob) DeletedAt() *time.Time { return j.deletedAt }

func (j *VideoJob) SetID(id string)             { j.id = id }
func (j *VideoJob) SetRemoteID(id string)       { j.remoteID = id }
func (j *VideoJob) SetStatus(status string)     { j.status = status }
func (j *VideoJob) SetCreatedAt(t time.Time)    { j.createdAt = t }
func (j *VideoJob) SetUpdatedAt(t time.Time)    { j.updatedAt = t }
func (j *VideoJob) SetDeletedAt(t *time.Time)   { j.deletedAt = t }
func (j *VideoJob) SetSequence(sequence int)    { j.sequence = sequence }
func (j *VideoJob) RestoreSource(source string) { j.source = source }

// Validate checks required fields before persistence.
func (j *VideoJob) Validate() error {
	if j.id == "" {
		return fmt.Errorf("video job ID is required")
	}
	if j.source == "" {
		return fmt.Errorf("video job source is required")
	}
	switch j.status {
	case JobStatusSubmitted, JobStatusAnalyzing, JobStatusComplete, JobStatusFailed, JobStatusAborted:
	default:
		return fmt.Errorf("invalid video job status: %s", j.status)
	}
	return nil
}
