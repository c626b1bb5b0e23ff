package domain

import "time"

// RunStatus é o resultado final de uma tentativa de ingestão.
type RunStatus string

const (
	RunStatusSuccess RunStatus = "success"
	RunStatusFailed  RunStatus = "failed"
)

// IngestionRun é a linha de auditoria (append-only) de uma tentativa de
// ingestão para (date, source, level).
type IngestionRun struct {
	ID         string           `json:"id"`
	Date       time.Time        `json:"date"`
	Source     string           `json:"source"`
	Level      AggregationLevel `json:"level"`
	Status     RunStatus        `json:"status"`
	RowCount   int              `json:"row_count"`
	Message    string           `json:"message,omitempty"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}
