package roadmap

import (
	"reflect"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
)

const fullObject = `{
  "company": "Google",
  "role": "SDE1",
  "rounds": [
    {"type": "Technical Screening", "topics": ["Data Structures", "Algorithms", "Problem Solving"]},
    {"type": "Behavioral", "topics": ["Teamwork", "Communication", "Leadership"]}
  ],
  "difficulty": "Hard",
  "recommended_order": ["Data Structures", "Algorithms", "Behavioral"],
  "evidence": {"key_skills": ["Python", "AWS", "Docker"], "topic_count": 2}
}`

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence inside prose",
			input:    "Here is the result:\n```json\n{\"company\":\"X\"}\n```\nThanks!",
			expected: `{"company":"X"}`,
		},
		{
			name:     "generic fence",
			input:    "```\n{\"difficulty\": \"Hard\"}\n```",
			expected: `{"difficulty": "Hard"}`,
		},
		{
			name:     "generic fence with language tag",
			input:    "```javascript\n{\"difficulty\": \"Hard\"}\n```",
			expected: `{"difficulty": "Hard"}`,
		},
		{
			name:     "json fence preferred over earlier generic fence",
			input:    "```\nnot this\n```\n```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "prose without fences",
			input:    "Sure! {\"a\": {\"b\": 2}} Hope this helps.",
			expected: `{"a": {"b": 2}}`,
		},
		{
			name:     "bare object with whitespace",
			input:    "  \n{\"a\": true}\n\t",
			expected: `{"a": true}`,
		},
		{
			name:     "unclosed json fence",
			input:    "```json\n{\"a\": \"b\"}",
			expected: `{"a": "b"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			if obj.Raw != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, obj.Raw)
			}
		})
	}
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cause error
	}{
		{name: "apology", input: "Sorry, I cannot help.", cause: ErrMalformed},
		{name: "empty", input: "   ", cause: ErrEmpty},
		{name: "empty fence", input: "```json\n```", cause: ErrEmpty},
		{name: "broken object", input: "{\"company\": \"X\",}", cause: ErrMalformed},
		{name: "braces reversed", input: "} nothing here {", cause: ErrMalformed},
		{name: "array", input: "[1, 2, 3]", cause: ErrNotObject},
		{name: "number", input: "42", cause: ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.input)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Expected cause %v, got %v", tt.cause, err)
			}
		})
	}
}

func TestParseRecoversFields(t *testing.T) {
	wrapped := []string{
		fullObject,
		"Here you go:\n```json\n" + fullObject + "\n```\nGood luck!",
		"```\n" + fullObject + "\n```",
		"The roadmap is " + fullObject + " as requested.",
	}

	for i, raw := range wrapped {
		rm, filled, failure := Parse(raw, "Acme", "SRE")
		if failure != nil {
			t.Fatalf("case %d: unexpected failure: %v", i, failure)
		}
		if len(filled) != 0 {
			t.Errorf("case %d: expected no filled fields, got %v", i, filled)
		}
		if rm.Difficulty != "Hard" {
			t.Errorf("case %d: expected difficulty 'Hard', got '%s'", i, rm.Difficulty)
		}
		if len(rm.Rounds) != 2 || rm.Rounds[1].Type != "Behavioral" {
			t.Errorf("case %d: unexpected rounds %+v", i, rm.Rounds)
		}
		expectedSkills := []string{"Python", "AWS", "Docker"}
		if !reflect.DeepEqual(rm.Evidence.KeySkills, expectedSkills) {
			t.Errorf("case %d: expected skills %v, got %v", i, expectedSkills, rm.Evidence.KeySkills)
		}
		if rm.Evidence.TopicCount != 2 {
			t.Errorf("case %d: expected topic count 2, got %d", i, rm.Evidence.TopicCount)
		}
		if rm.Company != "Acme" || rm.Role != "SRE" {
			t.Errorf("case %d: company/role not overridden: %s/%s", i, rm.Company, rm.Role)
		}
		if rm.Note != "" {
			t.Errorf("case %d: expected no note, got '%s'", i, rm.Note)
		}
	}
}

func TestParseFallsBackToDefault(t *testing.T) {
	inputs := []string{
		"Sorry, I cannot help.",
		"",
		"{not json at all}",
		"[\"a\", \"b\"]",
		"```json\n{\"rounds\": [\n```",
	}

	for _, raw := range inputs {
		rm, _, failure := Parse(raw, "Acme", "SRE")
		if failure == nil {
			t.Fatalf("Expected failure for %q", raw)
		}
		if failure.Kind != FailureDecode {
			t.Errorf("Expected kind %s, got %s", FailureDecode, failure.Kind)
		}
		expected := Default("Acme", "SRE")
		if !reflect.DeepEqual(rm, expected) {
			t.Errorf("Expected default roadmap for %q, got %+v", raw, rm)
		}
	}
}

func TestCoerceFillsMissingFields(t *testing.T) {
	obj, err := Extract(`{"company": "X", "difficulty": 3, "rounds": [{"topics": ["Go", 7, null, {"x": 1}]}, "junk"]}`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	rm, filled := Coerce(obj, "Acme", "SRE")

	if rm.Company != "Acme" {
		t.Errorf("Expected company 'Acme', got '%s'", rm.Company)
	}
	if rm.Difficulty != "Medium" {
		t.Errorf("Expected mistyped difficulty to default to 'Medium', got '%s'", rm.Difficulty)
	}
	if len(rm.Rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rm.Rounds))
	}
	if rm.Rounds[0].Type != "Round 1" {
		t.Errorf("Expected 'Round 1', got '%s'", rm.Rounds[0].Type)
	}
	if !reflect.DeepEqual(rm.Rounds[0].Topics, []string{"Go", "7"}) {
		t.Errorf("Unexpected topics %v", rm.Rounds[0].Topics)
	}
	if rm.Evidence.TopicCount != 1 {
		t.Errorf("Expected topic count to follow rounds, got %d", rm.Evidence.TopicCount)
	}
	def := Default("Acme", "SRE")
	if !reflect.DeepEqual(rm.RecommendedOrder, def.RecommendedOrder) {
		t.Errorf("Expected default recommended order, got %v", rm.RecommendedOrder)
	}

	sort.Strings(filled)
	expected := []string{"difficulty", "evidence.key_skills", "evidence.topic_count", "recommended_order", "rounds.1.type"}
	if !reflect.DeepEqual(filled, expected) {
		t.Errorf("Expected filled %v, got %v", expected, filled)
	}
}

func TestCoerceEmptyObject(t *testing.T) {
	obj, err := Extract("{}")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	rm, filled := Coerce(obj, "Acme", "SRE")
	def := Default("Acme", "SRE")

	if !reflect.DeepEqual(rm.Rounds, def.Rounds) {
		t.Errorf("Expected default rounds, got %+v", rm.Rounds)
	}
	if rm.Note != "" {
		t.Errorf("Coerced roadmap should carry no note, got '%s'", rm.Note)
	}
	if rm.Evidence.TopicCount != 4 {
		t.Errorf("Expected topic count 4, got %d", rm.Evidence.TopicCount)
	}
	if len(filled) != 5 {
		t.Errorf("Expected 5 filled fields, got %v", filled)
	}
}

func TestCoerceRoundWithoutTopics(t *testing.T) {
	obj, err := Extract(`{"rounds": [{"type": "Onsite"}, {"type": "Phone", "topics": []}]}`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	rm, filled := Coerce(obj, "Acme", "SRE")

	if len(rm.Rounds) != 2 {
		t.Fatalf("Expected 2 rounds, got %d", len(rm.Rounds))
	}
	for i, round := range rm.Rounds {
		if round.Topics == nil || len(round.Topics) != 0 {
			t.Errorf("Expected empty topic list for round %d, got %#v", i+1, round.Topics)
		}
	}

	expected := map[string]bool{"rounds.1.topics": true, "rounds.2.topics": true}
	for _, path := range filled {
		delete(expected, path)
	}
	if len(expected) != 0 {
		t.Errorf("Expected round topics reported as filled, got %v", filled)
	}
}

func TestParseDuplicateKeysLastWins(t *testing.T) {
	raw := `{"difficulty": "Easy", "difficulty": "Hard",
		"rounds": [{"type": "A", "type": "B", "topics": ["x"]}],
		"evidence": {"key_skills": ["Go"], "key_skills": ["Rust"]}}`

	rm, _, failure := Parse(raw, "Acme", "SRE")
	if failure != nil {
		t.Fatalf("Unexpected failure: %v", failure)
	}

	if rm.Difficulty != "Hard" {
		t.Errorf("Expected difficulty 'Hard', got '%s'", rm.Difficulty)
	}
	if len(rm.Rounds) != 1 || rm.Rounds[0].Type != "B" {
		t.Errorf("Expected round type 'B', got %+v", rm.Rounds)
	}
	if !reflect.DeepEqual(rm.Evidence.KeySkills, []string{"Rust"}) {
		t.Errorf("Expected key skills [Rust], got %v", rm.Evidence.KeySkills)
	}
}

func TestDefault(t *testing.T) {
	rm := Default("Acme", "SRE")

	if len(rm.Rounds) != 4 {
		t.Errorf("Expected 4 rounds, got %d", len(rm.Rounds))
	}
	if rm.Difficulty != "Medium" {
		t.Errorf("Expected difficulty 'Medium', got '%s'", rm.Difficulty)
	}
	if rm.Note == "" {
		t.Error("Expected note on default roadmap")
	}
	if rm.Version != SchemaVersion {
		t.Errorf("Expected version '%s', got '%s'", SchemaVersion, rm.Version)
	}

	// Mutating one result must not leak into the next.
	rm.Rounds[0].Topics[0] = "changed"
	again := Default("Acme", "SRE")
	if again.Rounds[0].Topics[0] != "Data Structures" {
		t.Error("Default shares slices between calls")
	}
}

func TestStamp(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))
	rm := Roadmap{Company: "Model Co", Role: "Model Role", Version: "9.9"}

	stamped := Stamp(rm, "Acme", "SRE", at)

	if stamped.Company != "Acme" || stamped.Role != "SRE" {
		t.Errorf("Expected Acme/SRE, got %s/%s", stamped.Company, stamped.Role)
	}
	if stamped.Version != SchemaVersion {
		t.Errorf("Expected version '%s', got '%s'", SchemaVersion, stamped.Version)
	}
	if !stamped.GeneratedAt.Equal(at) || stamped.GeneratedAt.Location() != time.UTC {
		t.Errorf("Expected %v in UTC, got %v", at, stamped.GeneratedAt)
	}
	if rm.Company != "Model Co" {
		t.Error("Stamp modified its input")
	}
}

func TestPreview(t *testing.T) {
	short := "short"
	if Preview(short) != short {
		t.Errorf("Expected '%s', got '%s'", short, Preview(short))
	}

	long := strings.Repeat("é", 600)
	preview := Preview(long)
	if !strings.HasSuffix(preview, "...") {
		t.Error("Expected truncated preview to end with '...'")
	}
	if got := len([]rune(strings.TrimSuffix(preview, "..."))); got != 500 {
		t.Errorf("Expected 500 runes, got %d", got)
	}
}
