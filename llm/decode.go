package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseError reports that a model's output could not be decoded into the
// requested shape. The raw output is kept for logging and fallback handling.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var (
	thinkTagRe  = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
)

// StripThinkTags removes paired reasoning delimiters and everything between
// them. Applying it twice yields the same result as applying it once.
func StripThinkTags(s string) string {
	return thinkTagRe.ReplaceAllString(s, "")
}

// DecodeJSON decodes a model's raw output into v. Reasoning delimiters and
// markdown code fences are stripped first; if the remainder is still not
// well-formed JSON for v, a *ParseError is returned and the caller applies
// its stage-level fallback policy.
func DecodeJSON(raw string, v interface{}) error {
	cleaned := strings.TrimSpace(StripThinkTags(raw))
	if m := codeFenceRe.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}

	// Models occasionally wrap JSON in prose; cut to the outermost
	// bracket pair before decoding.
	if start := strings.IndexAny(cleaned, "[{"); start > 0 {
		if end := strings.LastIndexAny(cleaned, "]}"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
