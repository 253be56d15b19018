package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrExtraction marks input that could not be read as a PDF: corrupt
// header, encrypted content, zero pages, or no extractable text at all.
var ErrExtraction = errors.New("pdf extraction failed")

// Text extracts the plain text of a PDF, page by page, in page order.
// Pages are joined with a newline and the result is trimmed. Pages that
// individually fail to extract are skipped; the call fails only when no
// page yields any text.
func Text(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty input", ErrExtraction)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	total := reader.NumPage()
	if total == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	var pages []string
	for i := 1; i <= total; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := pageText(page)
		if err != nil {
			continue
		}
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	if len(pages) == 0 {
		return "", fmt.Errorf("%w: no extractable text in %d page(s)", ErrExtraction, total)
	}

	return strings.TrimSpace(strings.Join(pages, "\n")), nil
}

// pageText isolates the library call so a panic inside the parser on a
// malformed page is downgraded to a per-page error.
func pageText(page pdf.Page) (content string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("page parse panic: %v", rec)
		}
	}()
	return page.GetPlainText(nil)
}
