package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("09:30")
		require.NoError(t, err)
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		_, err := NewTimeStringFromString("9:30am")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidTimeString)
	})

	t.Run("out of range hour", func(t *testing.T) {
		_, err := NewTimeStringFromString("25:00")
		require.Error(t, err)
	})
}

func TestNewTimeString(t *testing.T) {
	moment := time.Date(2026, 3, 14, 14, 45, 59, 0, time.UTC)
	ts := NewTimeString(moment)
	assert.Equal(t, TimeString("14:45"), ts)
}

func TestTimeString_Minutes(t *testing.T) {
	tests := []struct {
		in   TimeString
		want int
	}{
		{"00:00", 0},
		{"08:00", 480},
		{"12:30", 750},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		got, err := tt.in.Minutes()
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "minutes for %s", tt.in)
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("simple shift", func(t *testing.T) {
		got, err := TimeString("08:00").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("08:30"), got)
	})

	t.Run("crosses hour boundary", func(t *testing.T) {
		got, err := TimeString("09:45").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:15"), got)
	})

	t.Run("exactly end of day", func(t *testing.T) {
		got, err := TimeString("23:30").AddMinutes(30)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), got)
	})

	t.Run("past end of day", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(31)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTimeOutOfRange)
	})
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("08:00").IsBefore("08:30"))
	assert.False(t, TimeString("08:30").IsBefore("08:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))
	// Лексикографическое сравнение корректно и через границу часа
	assert.True(t, TimeString("09:59").IsBefore("10:00"))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("time column with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, TimeString("10:00"), ts)
	})

	t.Run("plain string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("15:45"))
		assert.Equal(t, TimeString("15:45"), ts)
	})

	t.Run("bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("07:15:00")))
		assert.Equal(t, TimeString("07:15"), ts)
	})

	t.Run("time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 11, 20, 0, 0, time.UTC)))
		assert.Equal(t, TimeString("11:20"), ts)
	})

	t.Run("nil", func(t *testing.T) {
		ts := TimeString("09:00")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
