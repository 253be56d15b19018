package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"insight-backend/internal/llm"
	"insight-backend/internal/shared/telemetry"
)

// apiBaseURL is a var so tests can point the client at a local server.
var apiBaseURL = "https://generativelanguage.googleapis.com"

const defaultModel = "gemini-2.0-flash"

// Client implements llm.Client against the Gemini generateContent API.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a Gemini client. The timeout bounds the whole
// call; a timeout surfaces as llm.ErrService like any other failure.
func NewClient(apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Available reports that a provider is configured.
func (c *Client) Available() bool { return true }

type generatePart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig generationConfig  `json:"generationConfig"`
}

type generationConfig struct {
	Temperature float32 `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// Analyze sends the document bytes plus the fixed instruction prompt and
// returns the raw response text.
func (c *Client) Analyze(ctx context.Context, input llm.AnalyzeInput) (string, error) {
	reqBody := generateRequest{
		Contents: []generateContent{{
			Parts: []generatePart{
				{InlineData: &inlineData{
					MIMEType: input.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(input.Data),
				}},
				{Text: analysisPrompt},
			},
		}},
		GenerationConfig: generationConfig{Temperature: 0},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %v", llm.ErrService, err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", apiBaseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", llm.ErrService, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("%w: request timeout: %v", llm.ErrService, err)
		}
		return "", fmt.Errorf("%w: %v", llm.ErrService, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", llm.ErrService, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: response parse: %v", llm.ErrService, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: gemini error %d (%s): %s", llm.ErrService, parsed.Error.Code, parsed.Error.Status, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini status %d", llm.ErrService, resp.StatusCode)
	}

	text := responseText(parsed)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty response text", llm.ErrService)
	}

	telemetry.Info("llm.response", map[string]any{
		"model":       c.model,
		"file_name":   input.FileName,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
		"text_len":    len(text),
	})
	return text, nil
}

func responseText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

var _ llm.Client = (*Client)(nil)
