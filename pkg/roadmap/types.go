package roadmap

import "time"

// SchemaVersion is stamped on every roadmap.
const SchemaVersion = "1.0"

// DefaultNote marks a roadmap built from the default record.
const DefaultNote = "Default roadmap - AI generation failed"

// Roadmap is an interview preparation plan for one company and role.
type Roadmap struct {
	Company          string    `json:"company" yaml:"company"`
	Role             string    `json:"role" yaml:"role"`
	Rounds           []Round   `json:"rounds" yaml:"rounds"`
	Difficulty       string    `json:"difficulty" yaml:"difficulty"`
	RecommendedOrder []string  `json:"recommended_order" yaml:"recommended_order"`
	Evidence         Evidence  `json:"evidence" yaml:"evidence"`
	GeneratedAt      time.Time `json:"generated_at" yaml:"generated_at"`
	Version          string    `json:"version" yaml:"version"`
	Note             string    `json:"note,omitempty" yaml:"note,omitempty"`
}

// Round is a single interview stage.
type Round struct {
	Type   string   `json:"type" yaml:"type"`
	Topics []string `json:"topics" yaml:"topics"`
}

// Evidence ties the roadmap back to the job description.
type Evidence struct {
	KeySkills  []string `json:"key_skills" yaml:"key_skills"`
	TopicCount int      `json:"topic_count" yaml:"topic_count"`
}

// Request carries the caller-supplied inputs for one roadmap.
type Request struct {
	Company        string
	Role           string
	JobDescription string
}

// IsDefault reports whether the roadmap came from the fallback path.
func (r Roadmap) IsDefault() (result bool) {
	result = r.Note != ""
	return result
}
