package pattern

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    Weekday
		wantErr bool
	}{
		{in: "monday", want: Monday},
		{in: " Sunday ", want: Sunday},
		{in: "wed", want: Wednesday},
		{in: "FRI", want: Friday},
		{in: "1", wantErr: true},
		{in: "0", wantErr: true},
		{in: "someday", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekday(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2025-09-01 is a Monday
	base := Date(2025, time.September, 1)
	for i, want := range []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday} {
		assert.Equal(t, want, WeekdayOf(base.AddDate(0, 0, i)))
	}
}

func TestWeekday_JSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D Weekday `json:"d"`
	}{D: Thursday})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"thursday"}`, string(b))

	var w Weekday
	require.NoError(t, json.Unmarshal([]byte(`"sat"`), &w))
	assert.Equal(t, Saturday, w)

	assert.Error(t, json.Unmarshal([]byte(`6`), &w))
	_, err = json.Marshal(Weekday(9))
	assert.Error(t, err)
}

func TestDay(t *testing.T) {
	in := time.Date(2025, 9, 3, 23, 59, 0, 0, time.FixedZone("WIB", 7*3600))
	got := Day(in)
	assert.Equal(t, Date(2025, time.September, 3), got)
	assert.Equal(t, time.UTC, got.Location())
}
