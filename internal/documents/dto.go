package documents

import (
	"time"

	"insight-backend/internal/insights"
	"insight-backend/internal/shared/telemetry"
)

// UploadResponse reports upload acceptance plus the processing outcome.
// The two are separate on purpose: the HTTP status only covers the
// upload itself.
type UploadResponse struct {
	Message          string `json:"message"`
	DocumentID       string `json:"document_id"`
	Filename         string `json:"filename"`
	ProcessingStatus Status `json:"processing_status"`
}

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID               string            `json:"id"`
	Filename         string            `json:"filename"`
	UploadDate       time.Time         `json:"upload_date"`
	FileSize         int64             `json:"file_size"`
	Insights         *insights.Insight `json:"insights"`
	ProcessingStatus Status            `json:"processing_status"`
	ErrorMessage     *string           `json:"error_message"`
}

// toResponse maps a record to its wire shape. A stored insight that no
// longer decodes is logged and surfaced as null so one bad record never
// breaks a listing.
func toResponse(doc Document) DocumentResponse {
	ins, err := doc.Insight()
	if err != nil {
		telemetry.Warn("documents.insights_decode_failed", map[string]any{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		ins = nil
	}

	var errMsg *string
	if doc.ErrorMessage != "" {
		msg := doc.ErrorMessage
		errMsg = &msg
	}

	return DocumentResponse{
		ID:               doc.ID,
		Filename:         doc.OriginalFilename,
		UploadDate:       doc.UploadDate,
		FileSize:         doc.FileSize,
		Insights:         ins,
		ProcessingStatus: doc.ProcessingStatus,
		ErrorMessage:     errMsg,
	}
}
