package analyzer

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sozercan/legal-simplify/apimodels"
)

var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	closingFence = regexp.MustCompile("\\s*```$")
)

// Coerce turns the model's free-form reply into an AnalysisResult. It never
// fails: anything that does not parse as a JSON object yields the empty
// result, and each field falls back to its own default.
func Coerce(raw string) apimodels.AnalysisResult {
	text := stripCodeFence(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil || fields == nil {
		return apimodels.EmptyResult()
	}

	return apimodels.AnalysisResult{
		Summary:     coerceSummary(fields["summary"]),
		Obligations: coerceList(fields["obligations"]),
		Risks:       coerceList(fields["risks"]),
		Benefits:    coerceBenefits(fields["benefits"]),
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = openingFence.ReplaceAllString(s, "")
	s = closingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func coerceSummary(raw json.RawMessage) string {
	if !truthy(raw) {
		return ""
	}
	return scalarString(raw)
}

// coerceList keeps arrays and discards every other shape.
func coerceList(raw json.RawMessage) []string {
	var items []json.RawMessage
	if !isArray(raw) || json.Unmarshal(raw, &items) != nil {
		return []string{}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if isNull(item) {
			continue
		}
		out = append(out, scalarString(item))
	}
	return out
}

// coerceBenefits differs from coerceList: a truthy non-array value is
// wrapped into a one-element list instead of being dropped.
func coerceBenefits(raw json.RawMessage) []string {
	if isArray(raw) {
		return coerceList(raw)
	}
	if truthy(raw) {
		return []string{scalarString(raw)}
	}
	return []string{}
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// truthy reports whether a JSON value would count as set: present, not
// null, false, zero or the empty string.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// scalarString returns a JSON string's value, or the compact JSON text of
// any other value.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
