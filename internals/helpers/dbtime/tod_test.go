package dbtime

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "hh:mm", in: "18:00", want: "18:00:00"},
		{name: "hh:mm:ss", in: "19:30:15", want: "19:30:15"},
		{name: "padded", in: "  07:05 ", want: "07:05:00"},
		{name: "garbage", in: "soon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestTod_ScanValue(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan(time.Date(2025, 3, 1, 18, 30, 0, 0, time.Local)))
	assert.Equal(t, "18:30:00", tod.String())

	require.NoError(t, tod.Scan([]byte("09:15:00")))
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:15:00", v)

	assert.Error(t, tod.Scan(42))
}

func TestTod_JSONAndCompare(t *testing.T) {
	start := MustParse("18:00")
	end := MustParse("19:30")
	assert.True(t, start.Before(end))
	assert.False(t, end.Before(start))
	assert.True(t, start.Equal(From(time.Date(1999, 1, 1, 18, 0, 0, 0, time.UTC))))

	b, err := json.Marshal(start)
	require.NoError(t, err)
	assert.JSONEq(t, `"18:00:00"`, string(b))

	var back Tod
	require.NoError(t, json.Unmarshal([]byte(`"19:30"`), &back))
	assert.True(t, back.Equal(end))
}
