package insights

// Method records which analysis path produced an Insight.
type Method string

const (
	MethodAI       Method = "ai"
	MethodFallback Method = "fallback"
)

// Sentinel values used when the AI response omits a field.
const (
	NoSummary    = "No summary available"
	NotSpecified = "Not specified"
)

// Insight is the structured analysis result for one uploaded document.
// It is persisted as a JSON column on the document record.
type Insight struct {
	Summary          string         `json:"summary"`
	KeySkills        []string       `json:"key_skills"`
	ExperienceLevel  string         `json:"experience_level"`
	Education        string         `json:"education"`
	Highlights       []string       `json:"highlights"`
	WordFrequency    map[string]int `json:"word_frequency,omitempty"`
	ProcessingMethod Method         `json:"processing_method"`
}
