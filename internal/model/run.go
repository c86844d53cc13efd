package model

import "time"

// RunStatus is the outcome of a conversion run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// String returns the string representation of the status.
func (s RunStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s RunStatus) IsValid() bool {
	switch s {
	case RunSucceeded, RunFailed:
		return true
	}
	return false
}

// Run describes one text-to-binary conversion and its outcome.
type Run struct {
	ID         string    `json:"id"`
	Input      string    `json:"input"`
	Output     string    `json:"output"`
	ByteOrder  string    `json:"byte_order"`
	Undirected bool      `json:"undirected,omitempty"`
	Records    int       `json:"records"`
	Comments   int       `json:"comments"`
	Duplicates int       `json:"duplicates,omitempty"`
	Bytes      int64     `json:"bytes"`
	Status     RunStatus `json:"status"`
	Error      string    `json:"error,omitempty"`
	UploadURI  string    `json:"upload_uri,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration returns how long the run took.
func (r *Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// RunFilter holds criteria for listing runs.
type RunFilter struct {
	Status []RunStatus `json:"status,omitempty"`
	Input  string      `json:"input,omitempty"` // exact input path match
	Limit  int         `json:"limit,omitempty"`
}
