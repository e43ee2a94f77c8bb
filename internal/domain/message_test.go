package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelection(t *testing.T) {
	sel, err := ParseSelection(RawMessage{Value: []byte(`{"system":"Sidereal","rising":"leo","date":"2025-02-12"}`)})
	require.NoError(t, err)
	assert.Equal(t, Selection{System: Sidereal, Rising: Leo, Date: "2025-02-12"}, sel)
}

func TestParseSelection_OrdinalRisingAndDefaultSystem(t *testing.T) {
	sel, err := ParseSelection(RawMessage{Value: []byte(`{"rising":3,"date":"2025-01-13"}`)})
	require.NoError(t, err)
	assert.Equal(t, Tropical, sel.System)
	assert.Equal(t, Cancer, sel.Rising)
}

func TestParseSelection_IgnoresExtraFields(t *testing.T) {
	sel, err := ParseSelection(RawMessage{Value: []byte(`{"request_id":"abc-1","rising":"Aries","date":"2025-05-12","locale":"en"}`)})
	require.NoError(t, err)
	assert.Equal(t, Selection{System: Tropical, Rising: Aries, Date: "2025-05-12"}, sel)
}

func TestParseSelection_Invalid(t *testing.T) {
	for _, payload := range []string{
		`not json`,
		`{"system":"draconic","rising":0,"date":"2025-01-13"}`,
		`{"system":"tropical","rising":"Ophiuchus","date":"2025-01-13"}`,
		`{"system":"tropical","rising":13,"date":"2025-01-13"}`,
	} {
		_, err := ParseSelection(RawMessage{Value: []byte(payload)})
		assert.Error(t, err, "payload %s", payload)
	}
}

func TestSerializeResult(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2025, time.February, 12, 14, 0, 0, 0, time.UTC))
	SetClock(fake)
	t.Cleanup(func() { SetClock(nil) })

	c := newTestCalculator(t)
	res, err := c.Compute(Selection{System: Sidereal, Rising: Aries, Date: "2025-02-12"})
	require.NoError(t, err)

	out, err := SerializeResult(res)
	require.NoError(t, err)

	assert.Equal(t, []byte("2025-02-12|sidereal|Aries"), out.Key)
	assert.Equal(t, "4", out.Headers["house"])
	assert.Equal(t, "2025-02-12T14:00:00Z", out.Headers["computed_at"])

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out.Value, &decoded))
	assert.Equal(t, "Cancer", decoded["sign"])
	assert.Equal(t, "Aries", decoded["rising"])
	assert.InDelta(t, 4.0, decoded["house"], 0)
	nak, ok := decoded["nakshatra"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 8.0, nak["ordinal"], 0)
	assert.Equal(t, "Mansion 8", nak["name"])
}

func TestSerializeResult_TropicalOmitsNakshatra(t *testing.T) {
	c := newTestCalculator(t)
	res, err := c.Compute(Selection{System: Tropical, Rising: Aries, Date: "2025-02-12"})
	require.NoError(t, err)

	out, err := SerializeResult(res)
	require.NoError(t, err)
	assert.NotContains(t, string(out.Value), `"nakshatra"`)
	assert.NotContains(t, string(out.Value), `"peak_time"`)
}
