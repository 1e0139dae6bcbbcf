package roadmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

var (
	// ErrEmpty is returned when there is no text left to decode.
	ErrEmpty = errors.New("empty response")
	// ErrMalformed is returned when the candidate text is not valid JSON.
	ErrMalformed = errors.New("malformed JSON")
	// ErrNotObject is returned when the decoded JSON is not an object.
	ErrNotObject = errors.New("JSON is not an object")
)

const (
	jsonFence    = "```json"
	genericFence = "```"
)

// Extract locates the JSON object in a free-form model response.
//
// A ```json fenced block wins over a plain ``` block, which wins over the
// whole text. Inside the chosen text the span from the first '{' to the last
// '}' is decoded; without such a span the whole text is decoded.
func Extract(raw string) (obj gjson.Result, err error) {
	work := strings.TrimSpace(raw)

	switch {
	case strings.Contains(work, jsonFence):
		work = betweenFences(work, jsonFence)
	case strings.Contains(work, genericFence):
		work = betweenFences(work, genericFence)
	}

	candidate := work
	start := strings.Index(work, "{")
	end := strings.LastIndex(work, "}")
	if start >= 0 && end > start {
		candidate = work[start : end+1]
	}

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		err = ErrEmpty
		return obj, err
	}

	if !gjson.Valid(candidate) {
		err = errors.Wrapf(ErrMalformed, "candidate of %d bytes", len(candidate))
		return obj, err
	}

	obj = gjson.Parse(candidate)
	if !obj.IsObject() {
		err = errors.Wrapf(ErrNotObject, "got %s", obj.Type)
		return obj, err
	}

	return obj, err
}

// betweenFences returns the text after the first opening fence up to the next
// ``` marker, or to the end of the text when the block is never closed.
func betweenFences(text, opening string) (inner string) {
	idx := strings.Index(text, opening)
	rest := text[idx+len(opening):]
	if closing := strings.Index(rest, genericFence); closing >= 0 {
		rest = rest[:closing]
	}
	inner = strings.TrimSpace(rest)
	return inner
}

// Coerce builds a typed roadmap from a decoded object. A missing, mistyped
// or empty top-level field (rounds, difficulty, recommended_order,
// evidence.key_skills) is taken from the default roadmap on its own;
// evidence.topic_count falls back to the number of rounds. Within a round a
// missing type becomes "Round N" and missing topics an empty list. The paths
// of all substituted fields are returned in filled. When a key repeats, the
// last occurrence wins. Company and role always come from the caller.
func Coerce(obj gjson.Result, company, role string) (rm Roadmap, filled []string) {
	def := Default(company, role)

	rm = Roadmap{
		Company: company,
		Role:    role,
		Version: SchemaVersion,
	}

	var roundFills []string
	rm.Rounds, roundFills = coerceRounds(member(obj, "rounds"))
	filled = append(filled, roundFills...)
	if len(rm.Rounds) == 0 {
		rm.Rounds = def.Rounds
		filled = append(filled, "rounds")
	}

	difficulty := member(obj, "difficulty")
	if difficulty.Type == gjson.String && strings.TrimSpace(difficulty.Str) != "" {
		rm.Difficulty = strings.TrimSpace(difficulty.Str)
	} else {
		rm.Difficulty = def.Difficulty
		filled = append(filled, "difficulty")
	}

	rm.RecommendedOrder = stringList(member(obj, "recommended_order"))
	if len(rm.RecommendedOrder) == 0 {
		rm.RecommendedOrder = def.RecommendedOrder
		filled = append(filled, "recommended_order")
	}

	evidence := member(obj, "evidence")
	rm.Evidence.KeySkills = stringList(member(evidence, "key_skills"))
	if len(rm.Evidence.KeySkills) == 0 {
		rm.Evidence.KeySkills = def.Evidence.KeySkills
		filled = append(filled, "evidence.key_skills")
	}

	topicCount := member(evidence, "topic_count")
	if topicCount.Type == gjson.Number && topicCount.Int() >= 0 {
		rm.Evidence.TopicCount = int(topicCount.Int())
	} else {
		rm.Evidence.TopicCount = len(rm.Rounds)
		filled = append(filled, "evidence.topic_count")
	}

	return rm, filled
}

func coerceRounds(value gjson.Result) (rounds []Round, filled []string) {
	if !value.IsArray() {
		return rounds, filled
	}

	for _, item := range value.Array() {
		if !item.IsObject() {
			continue
		}
		n := len(rounds) + 1

		round := Round{}
		typ := member(item, "type")
		if typ.Type == gjson.String && strings.TrimSpace(typ.Str) != "" {
			round.Type = strings.TrimSpace(typ.Str)
		} else {
			round.Type = fmt.Sprintf("Round %d", n)
			filled = append(filled, fmt.Sprintf("rounds.%d.type", n))
		}

		round.Topics = stringList(member(item, "topics"))
		if round.Topics == nil {
			round.Topics = []string{}
			filled = append(filled, fmt.Sprintf("rounds.%d.topics", n))
		}

		rounds = append(rounds, round)
	}

	return rounds, filled
}

// member returns the value of key in obj, taking the last occurrence when the
// key repeats. gjson's Get would return the first.
func member(obj gjson.Result, key string) (value gjson.Result) {
	if !obj.IsObject() {
		return value
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			value = v
		}
		return true
	})
	return value
}

// stringList keeps the scalar entries of a JSON array as trimmed strings.
func stringList(value gjson.Result) (list []string) {
	if !value.IsArray() {
		return list
	}
	for _, item := range value.Array() {
		switch item.Type {
		case gjson.String, gjson.Number, gjson.True, gjson.False:
			s := strings.TrimSpace(item.String())
			if s != "" {
				list = append(list, s)
			}
		case gjson.Null, gjson.JSON:
		}
	}
	return list
}

// Parse turns a raw model response into a complete roadmap. It never fails:
// when no object can be extracted the default roadmap is returned together
// with a FailureDecode describing why.
func Parse(raw, company, role string) (rm Roadmap, filled []string, failure *Failure) {
	obj, err := Extract(raw)
	if err != nil {
		rm = Default(company, role)
		failure = &Failure{Kind: FailureDecode, Err: err, Preview: Preview(raw)}
		return rm, filled, failure
	}

	rm, filled = Coerce(obj, company, role)
	return rm, filled, failure
}

// Stamp applies the system-controlled fields.
func Stamp(rm Roadmap, company, role string, now time.Time) (stamped Roadmap) {
	stamped = rm
	stamped.Company = company
	stamped.Role = role
	stamped.GeneratedAt = now.UTC()
	stamped.Version = SchemaVersion
	return stamped
}
