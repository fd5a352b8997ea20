package types

import "time"

// JobStatus is the lifecycle state of an asynchronous research job.
type JobStatus string

const (
	JobQueued     JobStatus = "queued"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobError      JobStatus = "error"
)

// Terminal reports whether the status is a final state.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobError
}

// JobInput is the validated submission that created a job.
type JobInput struct {
	Query       string       `json:"query"`
	Style       ContentStyle `json:"content_style"`
	DocumentIDs []string     `json:"document_ids,omitempty"`
}

// Job is the asynchronous unit of work tracking one research request from
// submission to terminal state. Jobs are owned exclusively by the job
// manager; readers always receive a snapshot copy.
type Job struct {
	ID                  string         `json:"id"`
	Status              JobStatus      `json:"status"`
	Input               JobInput       `json:"input"`
	CreatedAt           time.Time      `json:"created_at"`
	ProcessingStartedAt time.Time      `json:"processing_started_at,omitempty"`
	CompletedAt         time.Time      `json:"completed_at,omitempty"`
	ErrorAt             time.Time      `json:"error_at,omitempty"`
	Result              *WorkflowState `json:"result,omitempty"`
	ErrorMessage        string         `json:"error_message,omitempty"`
}

// Document is the stored metadata for an uploaded PDF.
type Document struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Title      string    `json:"title"`
	UploadedAt time.Time `json:"uploaded_at"`
	Chunks     int       `json:"chunks"`
}

// Draft is a saved content draft produced by a completed research job.
type Draft struct {
	ID           string       `json:"draft_id"`
	Title        string       `json:"title"`
	Tags         []string     `json:"tags,omitempty"`
	JobID        string       `json:"job_id,omitempty"`
	Query        string       `json:"query"`
	ContentStyle ContentStyle `json:"content_style"`
	Content      string       `json:"draft_content"`
	References   []string     `json:"references,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at,omitempty"`
}
