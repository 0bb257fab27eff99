package reading

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LabelUnknown is the advisory label used when the detector supplied
// no usable handedness classification.
const LabelUnknown = "Unknown"

// defaultAdvisoryScore stands in for a missing or malformed advisory
// score. Half confidence: the advisory neither helps nor blocks.
const defaultAdvisoryScore = 0.5

// Advisory is the canonical shape of a handedness classification after
// ingestion. Detector frontends disagree on payload shape (bare object,
// array-of-one, classifier-style field names), so everything is
// normalized here once instead of branching on shape downstream.
type Advisory struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ParseAdvisory normalizes a raw advisory payload. Unknown or malformed
// shapes degrade to {Unknown, 0.5} rather than failing: a bad advisory
// on one frame must never interrupt the session.
func ParseAdvisory(raw json.RawMessage) Advisory {
	fallback := Advisory{Label: LabelUnknown, Score: defaultAdvisoryScore}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return fallback
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil || len(items) == 0 {
			return fallback
		}
		return ParseAdvisory(items[0])

	case '"':
		var label string
		if err := json.Unmarshal(trimmed, &label); err != nil {
			return fallback
		}
		return Advisory{Label: normalizeLabel(label), Score: defaultAdvisoryScore}

	case '{':
		var obj struct {
			Label        string   `json:"label"`
			CategoryName string   `json:"categoryName"`
			DisplayName  string   `json:"displayName"`
			Score        *float64 `json:"score"`
		}
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return fallback
		}

		label := obj.Label
		if label == "" {
			label = obj.CategoryName
		}
		if label == "" {
			label = obj.DisplayName
		}

		score := defaultAdvisoryScore
		if obj.Score != nil {
			score = clamp01(*obj.Score)
		}

		return Advisory{Label: normalizeLabel(label), Score: score}
	}

	return fallback
}

func normalizeLabel(label string) string {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "left":
		return "Left"
	case "right":
		return "Right"
	}
	return LabelUnknown
}
