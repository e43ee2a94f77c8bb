package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// ParseSelection decodes a source message into a Selection. Malformed JSON,
// an unknown system, or an unknown rising sign is an error. Fields other
// than system, rising, and date are ignored; range checks are left to Compute.
func ParseSelection(raw RawMessage) (Selection, error) {
	var sel Selection
	if err := json.Unmarshal(raw.Value, &sel); err != nil {
		return Selection{}, fmt.Errorf("parse selection: %w", err)
	}
	if sel.System == "" {
		sel.System = Tropical
	}
	system, err := ParseSystem(string(sel.System))
	if err != nil {
		return Selection{}, fmt.Errorf("parse selection: %w", err)
	}
	sel.System = system
	return sel, nil
}

// ResultKey identifies a result by the selection that produced it.
func ResultKey(res DerivedResult) string {
	return res.Date + "|" + string(res.System) + "|" + res.Rising.String()
}

// SerializeResult marshals a DerivedResult into a sink message stamped with
// the package clock.
func SerializeResult(res DerivedResult) (OutputMessage, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return OutputMessage{}, fmt.Errorf("serialize result: %w", err)
	}
	return OutputMessage{
		Key:   []byte(ResultKey(res)),
		Value: data,
		Headers: map[string]string{
			"house":       strconv.Itoa(res.House),
			"computed_at": clock.Now().UTC().Format(time.RFC3339),
		},
	}, nil
}
