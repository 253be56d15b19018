package insights

import (
	"encoding/json"
	"strings"
)

const maxRawSummaryLen = 500

// StripCodeFences normalizes an LLM text response before JSON decoding.
// Models routinely wrap JSON in markdown fences; this keeps the
// heuristic in one place. A fence that is never closed is stripped to
// the end of the text.
func StripCodeFences(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.Index(text, "```json"); idx >= 0 {
		inner := text[idx+len("```json"):]
		if end := strings.Index(inner, "```"); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	if strings.HasPrefix(text, "```") {
		inner := strings.TrimPrefix(text, "```")
		if end := strings.Index(inner, "```"); end >= 0 {
			inner = inner[:end]
		}
		return strings.TrimSpace(inner)
	}

	return text
}

// aiPayload mirrors the JSON shape the analysis prompt asks the model
// to produce.
type aiPayload struct {
	Summary         string   `json:"summary"`
	KeySkills       []string `json:"key_skills"`
	ExperienceLevel string   `json:"experience_level"`
	Education       string   `json:"education"`
	Highlights      []string `json:"highlights"`
}

// FromAIResponse converts the raw model response into an Insight. If the
// response does not decode as JSON the raw text (truncated) becomes the
// summary rather than discarding the call; either way the method is "ai".
func FromAIResponse(raw string) Insight {
	var payload aiPayload
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &payload); err != nil {
		return Insight{
			Summary:          truncate(strings.TrimSpace(raw), maxRawSummaryLen),
			KeySkills:        []string{},
			ExperienceLevel:  NotSpecified,
			Education:        NotSpecified,
			Highlights:       []string{},
			ProcessingMethod: MethodAI,
		}
	}

	ins := Insight{
		Summary:          payload.Summary,
		KeySkills:        payload.KeySkills,
		ExperienceLevel:  payload.ExperienceLevel,
		Education:        payload.Education,
		Highlights:       payload.Highlights,
		ProcessingMethod: MethodAI,
	}
	if strings.TrimSpace(ins.Summary) == "" {
		ins.Summary = NoSummary
	}
	if ins.KeySkills == nil {
		ins.KeySkills = []string{}
	}
	if strings.TrimSpace(ins.ExperienceLevel) == "" {
		ins.ExperienceLevel = NotSpecified
	}
	if strings.TrimSpace(ins.Education) == "" {
		ins.Education = NotSpecified
	}
	if ins.Highlights == nil {
		ins.Highlights = []string{}
	}
	return ins
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
