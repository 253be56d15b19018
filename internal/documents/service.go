package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"insight-backend/internal/extract"
	"insight-backend/internal/insights"
	"insight-backend/internal/llm"
	"insight-backend/internal/shared/metrics"
	"insight-backend/internal/shared/storage/object"
	"insight-backend/internal/shared/telemetry"
	"insight-backend/internal/shared/util"
)

const (
	// MaxUploadSize is the upload limit enforced before any record exists.
	MaxUploadSize = 10 << 20 // 10 MiB

	pdfContentType = "application/pdf"
)

// Service runs the document processing pipeline: validate, record,
// analyze (AI with local fallback), persist the outcome.
type Service struct {
	Repo  Repo
	Files object.ObjectStore
	AI    llm.Client

	// Extract overrides the PDF extractor; nil means extract.Text.
	Extract func(data []byte) (string, error)
}

// AIAvailable reports whether an AI provider is configured.
func (s *Service) AIAvailable() bool {
	return s.AI != nil && s.AI.Available()
}

// Process ingests one uploaded PDF. Validation failures return
// ErrInvalidInput before any record is created. After the record exists
// the error return only covers persistence faults; analysis failures are
// reported through the returned document's status, never the error.
func (s *Service) Process(ctx context.Context, originalFilename, contentType string, data []byte) (Document, error) {
	if contentType != pdfContentType {
		return Document{}, fmt.Errorf("%w: only PDF files are allowed", ErrInvalidInput)
	}
	if int64(len(data)) > MaxUploadSize {
		return Document{}, fmt.Errorf("%w: file size too large, maximum 10MB allowed", ErrInvalidInput)
	}

	id := uuid.NewString()
	doc := Document{
		ID:               id,
		OriginalFilename: originalFilename,
		StoredFilename:   storedName(id, originalFilename),
		UploadDate:       time.Now().UTC(),
		FileSize:         int64(len(data)),
		ContentType:      contentType,
		ProcessingStatus: StatusProcessing,
	}

	// Commit before analysis so the record is visible even if later
	// steps fail.
	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, fmt.Errorf("create document record: %w", err)
	}
	metrics.IncUploadStarted()
	start := time.Now()

	s.keepFile(ctx, doc, data)

	outcome := s.analyze(ctx, originalFilename, data)
	if err := s.Repo.Finish(ctx, id, outcome); err != nil {
		return Document{}, fmt.Errorf("persist outcome for document %s: %w", id, err)
	}

	metrics.ObserveProcessingDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if outcome.Status() == StatusCompleted {
		metrics.IncUploadCompleted()
	} else {
		metrics.IncUploadFailed()
		telemetry.Error("documents.processing_failed", map[string]any{
			"document_id": id,
			"file_name":   originalFilename,
			"error":       outcome.ErrorMessage(),
		})
	}

	return s.Repo.Get(ctx, id)
}

// analyze tries the AI path and falls back to local word-frequency
// analysis when the service itself fails. Extraction failure during the
// recovery path is fatal to the document.
func (s *Service) analyze(ctx context.Context, fileName string, data []byte) Outcome {
	raw, err := s.AI.Analyze(ctx, llm.AnalyzeInput{
		FileName: fileName,
		MIMEType: pdfContentType,
		Data:     data,
	})
	if err == nil {
		metrics.IncAIAnalysis()
		return Completed(insights.FromAIResponse(raw))
	}
	if !errors.Is(err, llm.ErrService) {
		return Failed(err.Error())
	}

	telemetry.Warn("documents.ai_failed", map[string]any{
		"file_name": fileName,
		"error":     err.Error(),
	})

	extractText := s.Extract
	if extractText == nil {
		extractText = extract.Text
	}
	text, exErr := extractText(data)
	if exErr != nil {
		return Failed(exErr.Error())
	}
	metrics.IncFallbackAnalysis()
	return Completed(insights.Fallback(text))
}

// keepFile persists the raw upload under its stored name. Best-effort:
// the document's bytes were already consumed for analysis, so a store
// failure degrades to a log line.
func (s *Service) keepFile(ctx context.Context, doc Document, data []byte) {
	if s.Files == nil {
		return
	}
	if _, err := s.Files.Save(ctx, doc.StoredFilename, doc.ContentType, bytes.NewReader(data)); err != nil {
		telemetry.Warn("documents.store_file_failed", map[string]any{
			"document_id": doc.ID,
			"stored_name": doc.StoredFilename,
			"error":       err.Error(),
		})
	}
}

// Get returns one document by id.
func (s *Service) Get(ctx context.Context, id string) (Document, error) {
	return s.Repo.Get(ctx, id)
}

// List returns up to limit documents, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Document, error) {
	return s.Repo.List(ctx, limit)
}

// Delete removes a document and its insights.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func storedName(id, originalFilename string) string {
	sanitized, err := util.SanitizeFileName(originalFilename)
	if err != nil {
		sanitized = "document.pdf"
	}
	return id + "_" + sanitized
}
