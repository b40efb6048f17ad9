package intent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSON returns the span from the first '{' to the last '}' of reply.
// The match is greedy over the whole reply, so prose on either side is
// dropped but anything between the outermost braces is kept.
func ExtractJSON(reply string) (string, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in model reply", ErrClassification)
	}
	return reply[start : end+1], nil
}

// ParseIntent decodes a JSON object span into an Intent. The whole span must
// be a single object with string-typed fields. Field values are kept as the
// model wrote them and the intent tag itself is not checked here.
func ParseIntent(span string) (Intent, error) {
	var in Intent
	if err := json.Unmarshal([]byte(span), &in); err != nil {
		return Intent{}, fmt.Errorf("%w: malformed JSON in model reply: %v", ErrClassification, err)
	}
	return in, nil
}
