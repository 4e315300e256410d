package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexDate(t *testing.T) {
	t.Run("Success: accepted layouts parse", func(t *testing.T) {
		for _, s := range []string{
			"2024-05-15T12:30:00Z",
			"2024-05-15T12:30:00.123456789Z",
			"2024-05-15T12:30:00",
			"2024-05-15 12:30:00",
			"2024-05-15",
		} {
			d := ParseFlexDate(s)
			require.True(t, d.Valid(), "layout for %q", s)
			assert.Equal(t, 2024, d.Time().Year())
			assert.Equal(t, time.May, d.Time().Month())
		}
	})

	t.Run("Edge Case: garbage becomes invalid, never an error", func(t *testing.T) {
		for _, s := range []string{"", "   ", "not a date", "15/05/2024", "2024-13-45"} {
			d := ParseFlexDate(s)
			assert.False(t, d.Valid(), "input %q", s)
			assert.True(t, d.Time().IsZero())
		}
	})
}

func TestFlexDateJSON(t *testing.T) {
	t.Run("Success: string date round-trips", func(t *testing.T) {
		var d FlexDate
		require.NoError(t, json.Unmarshal([]byte(`"2024-05-15T12:00:00Z"`), &d))
		require.True(t, d.Valid())

		out, err := json.Marshal(d)
		require.NoError(t, err)

		var back FlexDate
		require.NoError(t, json.Unmarshal(out, &back))
		assert.True(t, back.Time().Equal(d.Time()))
	})

	t.Run("Success: epoch milliseconds are accepted", func(t *testing.T) {
		when := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

		var d FlexDate
		require.NoError(t, json.Unmarshal([]byte("1715774400000"), &d))
		require.True(t, d.Valid())
		assert.True(t, d.Time().Equal(when))
	})

	t.Run("Edge Case: null and malformed payloads decode as invalid", func(t *testing.T) {
		for _, raw := range []string{"null", `"yesterday-ish"`, `{"nested":true}`, "[1,2]"} {
			var d FlexDate
			require.NoError(t, json.Unmarshal([]byte(raw), &d), "payload %s", raw)
			assert.False(t, d.Valid(), "payload %s", raw)
		}
	})

	t.Run("Success: invalid dates marshal as null", func(t *testing.T) {
		out, err := json.Marshal(FlexDate{})
		require.NoError(t, err)
		assert.Equal(t, "null", string(out))
	})
}

func TestFlexDateSQL(t *testing.T) {
	t.Run("Success: valid date maps to a timestamp value", func(t *testing.T) {
		when := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)

		v, err := NewFlexDate(when).Value()
		require.NoError(t, err)
		assert.Equal(t, when, v)
	})

	t.Run("Success: invalid date maps to NULL", func(t *testing.T) {
		v, err := FlexDate{}.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("Success: scanning NULL and timestamps", func(t *testing.T) {
		var d FlexDate
		require.NoError(t, d.Scan(nil))
		assert.False(t, d.Valid())

		when := time.Date(2024, 5, 15, 8, 30, 0, 0, time.UTC)
		require.NoError(t, d.Scan(when))
		require.True(t, d.Valid())
		assert.True(t, d.Time().Equal(when))
	})
}
