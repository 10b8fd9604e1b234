package models

import "time"

// Event types written to the system log.
const (
	EventWastage         = "WASTAGE"
	EventDatasetUpload   = "DATASET_UPLOAD"
	EventDatasetClear    = "DATASET_CLEAR"
	EventSimulationStart = "SIMULATION_START"
	EventSimulationStop  = "SIMULATION_STOP"
)

// SystemEvent is a single log entry.
type SystemEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // WASTAGE | DATASET_UPLOAD | DATASET_CLEAR | SIMULATION_START | SIMULATION_STOP
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
