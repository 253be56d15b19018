package documents

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"insight-backend/internal/insights"
)

// Status is the lifecycle state of a document record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Document represents one uploaded PDF and its processing outcome.
// Insights holds the serialized insights.Insight and is set only when
// the status is completed; ErrorMessage is set only when it is failed.
type Document struct {
	ID               string         `gorm:"primaryKey"`
	OriginalFilename string         `gorm:"index"`
	StoredFilename   string
	UploadDate       time.Time      `gorm:"index"`
	FileSize         int64
	ContentType      string
	ProcessingStatus Status
	Insights         datatypes.JSON
	ErrorMessage     string
}

// TableName pins the table name regardless of gorm pluralization rules.
func (Document) TableName() string { return "documents" }

// Insight decodes the stored insight payload, or returns nil when the
// document has none.
func (d Document) Insight() (*insights.Insight, error) {
	if len(d.Insights) == 0 {
		return nil, nil
	}
	var ins insights.Insight
	if err := json.Unmarshal(d.Insights, &ins); err != nil {
		return nil, fmt.Errorf("decode insights for document %s: %w", d.ID, err)
	}
	return &ins, nil
}

// Outcome is the terminal result of processing: either a completed
// insight or a failure message, never both. Repos apply it atomically so
// the status/field coupling cannot drift.
type Outcome struct {
	status     Status
	insight    *insights.Insight
	errMessage string
}

// Completed builds the terminal outcome for a successful analysis.
func Completed(ins insights.Insight) Outcome {
	return Outcome{status: StatusCompleted, insight: &ins}
}

// Failed builds the terminal outcome for a processing failure.
func Failed(message string) Outcome {
	return Outcome{status: StatusFailed, errMessage: message}
}

// Status returns the terminal status the outcome carries.
func (o Outcome) Status() Status { return o.status }

// ErrorMessage returns the failure message, empty for completed outcomes.
func (o Outcome) ErrorMessage() string { return o.errMessage }

// insightJSON serializes the completed insight, nil for failures.
func (o Outcome) insightJSON() (datatypes.JSON, error) {
	if o.insight == nil {
		return nil, nil
	}
	data, err := json.Marshal(o.insight)
	if err != nil {
		return nil, fmt.Errorf("encode insights: %w", err)
	}
	return datatypes.JSON(data), nil
}

// apply writes the outcome onto a document record.
func (o Outcome) apply(doc *Document) error {
	payload, err := o.insightJSON()
	if err != nil {
		return err
	}
	doc.ProcessingStatus = o.status
	doc.Insights = payload
	doc.ErrorMessage = o.errMessage
	return nil
}
