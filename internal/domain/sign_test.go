package domain

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSign(t *testing.T) {
	tests := []struct {
		in   string
		want Sign
	}{
		{"Aries", Aries},
		{"leo", Leo},
		{"  SAGITTARIUS ", Sagittarius},
		{"0", Aries},
		{"11", Pisces},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseSign(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseSign_Invalid(t *testing.T) {
	for _, in := range []string{"", "Ophiuchus", "12", "-1"} {
		_, err := ParseSign(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestSign_String(t *testing.T) {
	assert.Equal(t, "Aries", Aries.String())
	assert.Equal(t, "Pisces", Pisces.String())
	assert.Equal(t, "Sign(12)", Sign(12).String())
}

func TestSign_JSON(t *testing.T) {
	data, err := json.Marshal(Capricorn)
	require.NoError(t, err)
	assert.JSONEq(t, `"Capricorn"`, string(data))

	var byName, byOrdinal Sign
	require.NoError(t, json.Unmarshal([]byte(`"virgo"`), &byName))
	require.NoError(t, json.Unmarshal([]byte(`5`), &byOrdinal))
	assert.Equal(t, Virgo, byName)
	assert.Equal(t, Virgo, byOrdinal)

	var bad Sign
	assert.Error(t, json.Unmarshal([]byte(`12`), &bad))
	assert.Error(t, json.Unmarshal([]byte(`true`), &bad))
}

func TestNormalizeLongitude(t *testing.T) {
	assert.InDelta(t, 345.9, NormalizeLongitude(-14.1), 1e-9)
	assert.InDelta(t, 0.0, NormalizeLongitude(360), 1e-12)
	assert.InDelta(t, 10.0, NormalizeLongitude(370), 1e-12)
	assert.InDelta(t, 359.5, NormalizeLongitude(-0.5), 1e-12)
	assert.InDelta(t, 135.0, NormalizeLongitude(135), 1e-12)
}

func TestResolveLongitude_TropicalRoundTrip(t *testing.T) {
	for _, s := range Signs() {
		for _, deg := range []float64{0, 0.5, 15, 23.98, 29.999} {
			lon, used := ResolveLongitude(Tropical, s, deg, DefaultAyanamsa)
			assert.Equal(t, s, used)
			assert.Equal(t, float64(s)*30+deg, lon) //nolint:testifylint // exact by construction
		}
	}
}

func TestResolveLongitude_SiderealRange(t *testing.T) {
	for _, s := range Signs() {
		for deg := 0.0; deg < SignWidth; deg += 0.25 {
			lon, used := ResolveLongitude(Sidereal, s, deg, DefaultAyanamsa)
			assert.GreaterOrEqual(t, lon, 0.0)
			assert.Less(t, lon, 360.0)
			assert.True(t, used.Valid())
			assert.Equal(t, SignAt(lon), used)
		}
	}
}

func TestResolveLongitude_SiderealLeo15(t *testing.T) {
	lon, used := ResolveLongitude(Sidereal, Leo, 15, DefaultAyanamsa)
	assert.InDelta(t, 110.9, lon, 1e-9)
	assert.Equal(t, Cancer, used)
}

func TestResolveLongitude_SiderealWrapsBelowAries(t *testing.T) {
	lon, used := ResolveLongitude(Sidereal, Aries, 10, DefaultAyanamsa)
	assert.InDelta(t, 345.9, lon, 1e-9)
	assert.Equal(t, Pisces, used)
}

func TestParseSystem(t *testing.T) {
	s, err := ParseSystem("Sidereal")
	require.NoError(t, err)
	assert.Equal(t, Sidereal, s)
	assert.Equal(t, "Sidereal", s.Label())
	assert.Equal(t, "Tropical", Tropical.Label())

	_, err = ParseSystem("draconic")
	assert.Error(t, err)
}

func TestParseSignAndLabel_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 2000 {
				s, err := ParseSign("sagittarius")
				if err != nil {
					errs <- err
					return
				}
				if s != Sagittarius || Sidereal.Label() != "Sidereal" {
					errs <- assert.AnError
					return
				}
				var decoded Sign
				if err := json.Unmarshal([]byte(`"pisces"`), &decoded); err != nil || decoded != Pisces {
					errs <- assert.AnError
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
