package domain

import "time"

// Table names the two staged relations.
type Table string

const (
	TableAuthoritative Table = "authoritative_user"
	TableSecondary     Table = "secondary_user"
)

// Snapshot is the metadata record written alongside a staged table. Its
// presence is what marks a table as loaded.
type Snapshot struct {
	Table    Table     `json:"table"`
	RunID    string    `json:"run_id"`
	Source   string    `json:"source"`
	RowCount int64     `json:"row_count"`
	LoadedAt time.Time `json:"loaded_at"`
}

// RunRecord is one entry of the invocation audit trail.
type RunRecord struct {
	ID         int64                  `json:"id"`
	RunID      string                 `json:"run_id"`
	Command    string                 `json:"command"`
	Outcome    string                 `json:"outcome"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StartedAt  time.Time              `json:"started_at"`
	FinishedAt time.Time              `json:"finished_at"`
}

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
