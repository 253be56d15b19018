package documents

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"insight-backend/internal/shared/metrics"
	"insight-backend/internal/shared/server/respond"
)

const defaultListLimit = 50

// bodyLimit leaves headroom above MaxUploadSize for multipart framing,
// so a file at exactly the limit still reaches size validation.
const bodyLimit = MaxUploadSize + 1<<20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/upload-resume", h.upload)
	r.GET("/insights", h.list)
	r.DELETE("/insights/:document_id", h.remove)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, bodyLimit)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		metrics.IncUploadRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "a PDF file is required in the 'file' field", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		metrics.IncUploadRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		metrics.IncUploadRejected()
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	doc, err := h.Svc.Process(c.Request.Context(), fileHeader.Filename, contentType, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			metrics.IncUploadRejected()
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process document", nil)
		}
		return
	}

	c.Set("documentId", doc.ID)

	message := "Document uploaded and processed successfully"
	if doc.ProcessingStatus == StatusFailed {
		message = "Document upload successful, but processing failed"
	}
	respond.OK(c, UploadResponse{
		Message:          message,
		DocumentID:       doc.ID,
		Filename:         doc.OriginalFilename,
		ProcessingStatus: doc.ProcessingStatus,
	})
}

func (h *Handler) list(c *gin.Context) {
	if id := c.Query("document_id"); id != "" {
		doc, err := h.Svc.Get(c.Request.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			default:
				respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
			}
			return
		}
		respond.OK(c, []DocumentResponse{toResponse(doc)})
		return
	}

	limit := defaultListLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	docs, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list documents", nil)
		return
	}

	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, toResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("document_id")

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}

	c.Set("documentId", id)
	respond.OK(c, gin.H{"message": "Document deleted successfully"})
}
