package documents

import (
	"context"
	"errors"
	"strings"
	"testing"

	"insight-backend/internal/insights"
	"insight-backend/internal/llm"
	localstore "insight-backend/internal/shared/storage/object/local"
)

type staticAI struct {
	resp string
	err  error
}

func (s staticAI) Analyze(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	_ = ctx
	_ = input
	if s.err != nil {
		return "", s.err
	}
	return s.resp, nil
}

func (s staticAI) Available() bool { return s.err == nil }

func newService(t *testing.T, ai llm.Client) *Service {
	t.Helper()
	return &Service{
		Repo:  NewMemoryRepo(),
		Files: localstore.New(t.TempDir()),
		AI:    ai,
	}
}

func TestProcessRejectsNonPDFContentType(t *testing.T) {
	svc := newService(t, staticAI{resp: "{}"})

	_, err := svc.Process(context.Background(), "resume.docx", "application/msword", []byte("data"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	docs, _ := svc.List(context.Background(), 10)
	if len(docs) != 0 {
		t.Fatalf("no record may exist after validation failure, got %d", len(docs))
	}
}

func TestProcessRejectsOversizedFile(t *testing.T) {
	svc := newService(t, staticAI{resp: "{}"})

	big := make([]byte, MaxUploadSize+1)
	_, err := svc.Process(context.Background(), "huge.pdf", "application/pdf", big)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("got %v, want ErrInvalidInput", err)
	}

	docs, _ := svc.List(context.Background(), 10)
	if len(docs) != 0 {
		t.Fatalf("no record may exist after validation failure, got %d", len(docs))
	}
}

func TestProcessAIPathCompletes(t *testing.T) {
	svc := newService(t, staticAI{
		resp: `{"summary":"Backend engineer","key_skills":["go"],"experience_level":"Senior","education":"BSc","highlights":["shipped x"]}`,
	})

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("not really a pdf"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ProcessingStatus != StatusCompleted {
		t.Fatalf("status = %q, want completed", doc.ProcessingStatus)
	}

	ins, err := doc.Insight()
	if err != nil || ins == nil {
		t.Fatalf("insight: %v %v", ins, err)
	}
	if ins.ProcessingMethod != insights.MethodAI {
		t.Fatalf("method = %q, want ai", ins.ProcessingMethod)
	}
	if ins.Summary != "Backend engineer" {
		t.Fatalf("summary = %q", ins.Summary)
	}
	if ins.WordFrequency != nil {
		t.Fatalf("ai path must not carry word_frequency, got %v", ins.WordFrequency)
	}
}

func TestProcessFallsBackWhenAIFails(t *testing.T) {
	svc := newService(t, staticAI{err: llm.ErrService})
	svc.Extract = func(data []byte) (string, error) {
		return "golang golang docker kubernetes terraform ansible", nil
	}

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("pdf bytes"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ProcessingStatus != StatusCompleted {
		t.Fatalf("status = %q, want completed via fallback", doc.ProcessingStatus)
	}

	ins, err := doc.Insight()
	if err != nil || ins == nil {
		t.Fatalf("insight: %v %v", ins, err)
	}
	if ins.ProcessingMethod != insights.MethodFallback {
		t.Fatalf("method = %q, want fallback", ins.ProcessingMethod)
	}
	if len(ins.WordFrequency) == 0 {
		t.Fatalf("fallback insight must carry word_frequency")
	}
}

func TestProcessExtractionFailureFailsDocument(t *testing.T) {
	svc := newService(t, staticAI{err: llm.ErrService})

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("plain text, not a pdf"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ProcessingStatus != StatusFailed {
		t.Fatalf("status = %q, want failed", doc.ProcessingStatus)
	}
	if doc.ErrorMessage == "" {
		t.Fatalf("failed document must carry an error message")
	}
	if !strings.Contains(doc.ErrorMessage, "pdf extraction failed") {
		t.Fatalf("error message = %q", doc.ErrorMessage)
	}
}

func TestProcessNonServiceAIErrorFailsDocument(t *testing.T) {
	svc := newService(t, staticAI{err: errors.New("unexpected provider bug")})

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("bytes"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ProcessingStatus != StatusFailed {
		t.Fatalf("status = %q, want failed", doc.ProcessingStatus)
	}
	if !strings.Contains(doc.ErrorMessage, "unexpected provider bug") {
		t.Fatalf("error message = %q", doc.ErrorMessage)
	}
}

func TestProcessTerminalStatusOnly(t *testing.T) {
	svc := newService(t, staticAI{resp: `{"summary":"ok"}`})

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("data"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.ProcessingStatus != StatusCompleted && doc.ProcessingStatus != StatusFailed {
		t.Fatalf("status = %q, must be terminal by return time", doc.ProcessingStatus)
	}
}

func TestProcessStoresUploadedFile(t *testing.T) {
	dir := t.TempDir()
	svc := &Service{
		Repo:  NewMemoryRepo(),
		Files: localstore.New(dir),
		AI:    staticAI{resp: `{"summary":"ok"}`},
	}

	doc, err := svc.Process(context.Background(), "resume.pdf", "application/pdf", []byte("payload"))
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if doc.StoredFilename != doc.ID+"_resume.pdf" {
		t.Fatalf("stored filename = %q", doc.StoredFilename)
	}

	rc, err := svc.Files.Open(context.Background(), doc.StoredFilename)
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	_ = rc.Close()
}

func TestAIAvailable(t *testing.T) {
	if svc := (&Service{AI: llm.Unavailable{}}); svc.AIAvailable() {
		t.Fatalf("unavailable client must report false")
	}
	if svc := (&Service{AI: staticAI{resp: "{}"}}); !svc.AIAvailable() {
		t.Fatalf("configured client must report true")
	}
}
