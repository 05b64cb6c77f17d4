package pattern

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolops_backend/internals/helpers/dbtime"
)

func rule(w Weekday, start, end string) Rule {
	return Rule{ID: uuid.New(), Weekday: w, Start: dbtime.MustParse(start), End: dbtime.MustParse(end)}
}

func monWedFri() Pattern {
	return New([]Rule{
		rule(Monday, "18:00", "19:30"),
		rule(Wednesday, "18:00", "19:30"),
		rule(Friday, "18:00", "19:30"),
	})
}

func TestPattern_NextOccurrence(t *testing.T) {
	p := monWedFri()
	mon := Date(2025, time.September, 1)

	tests := []struct {
		name  string
		after time.Time
		want  time.Time
		day   Weekday
	}{
		{name: "monday to wednesday", after: mon, want: mon.AddDate(0, 0, 2), day: Wednesday},
		{name: "wednesday to friday", after: mon.AddDate(0, 0, 2), want: mon.AddDate(0, 0, 4), day: Friday},
		{name: "friday wraps to monday", after: mon.AddDate(0, 0, 4), want: mon.AddDate(0, 0, 7), day: Monday},
		{name: "strictly after a matching day", after: mon.AddDate(0, 0, -1), want: mon, day: Monday},
		{name: "time of day is ignored", after: mon.Add(20 * time.Hour), want: mon.AddDate(0, 0, 2), day: Wednesday},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, r, err := p.NextOccurrence(tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.day, r.Weekday)
		})
	}
}

func TestPattern_EmptyExhausts(t *testing.T) {
	p := New(nil)
	assert.True(t, p.Empty())

	_, _, err := p.NextOccurrence(Date(2025, time.September, 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrScheduleSearchExhausted))
}

func TestPattern_HorizonBound(t *testing.T) {
	p := New([]Rule{rule(Sunday, "08:00", "09:00")}, WithHorizon(3))
	// Monday + 3 days never reaches Sunday
	_, _, err := p.NextOccurrence(Date(2025, time.September, 1))
	assert.ErrorIs(t, err, ErrScheduleSearchExhausted)

	got, _, err := p.NextOccurrence(Date(2025, time.September, 5))
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.September, 7), got)
}

func TestPattern_FirstRuleWinsPerWeekday(t *testing.T) {
	first := rule(Monday, "18:00", "19:30")
	second := rule(Monday, "08:00", "09:00")
	p := New([]Rule{first, second, {Weekday: Weekday(0)}})

	require.Len(t, p.Rules(), 1)
	r, ok := p.RuleFor(Monday)
	require.True(t, ok)
	assert.Equal(t, first.ID, r.ID)
}

func TestPattern_SkipsHolidays(t *testing.T) {
	mon := Date(2025, time.September, 1)
	holiday := DateRange{From: mon.AddDate(0, 0, 2), To: mon.AddDate(0, 0, 4)} // Wed..Fri
	p := New(monWedFri().Rules(), WithHolidays([]DateRange{holiday}))

	got, r, err := p.NextOccurrence(mon)
	require.NoError(t, err)
	assert.Equal(t, mon.AddDate(0, 0, 7), got)
	assert.Equal(t, Monday, r.Weekday)

	_, ok := p.Matches(mon.AddDate(0, 0, 2))
	assert.False(t, ok)
}

func TestPattern_LongHolidayDoesNotConsumeHorizon(t *testing.T) {
	mon := Date(2025, time.September, 1)
	// three weeks of break: longer than the horizon, but holidays are not counted
	long := DateRange{From: mon.AddDate(0, 0, 1), To: mon.AddDate(0, 0, 21)}
	p := New(monWedFri().Rules(), WithHolidays([]DateRange{long}))

	got, _, err := p.NextOccurrence(mon)
	require.NoError(t, err)
	assert.Equal(t, mon.AddDate(0, 0, 23), got) // Wednesday after the break
}

func TestPattern_FirstOnOrAfter(t *testing.T) {
	p := monWedFri()
	mon := Date(2025, time.September, 1)

	got, _, err := p.FirstOnOrAfter(mon)
	require.NoError(t, err)
	assert.Equal(t, mon, got)

	got, _, err = p.FirstOnOrAfter(mon.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, mon.AddDate(0, 0, 2), got)
}

func TestDateRange_RecurringYearly(t *testing.T) {
	newYear := DateRange{From: Date(2020, time.December, 30), To: Date(2021, time.January, 2), RecurringYearly: true}
	assert.True(t, newYear.Includes(Date(2025, time.December, 31)))
	assert.True(t, newYear.Includes(Date(2026, time.January, 1)))
	assert.False(t, newYear.Includes(Date(2026, time.January, 3)))

	indep := DateRange{From: Date(2020, time.August, 17), To: Date(2020, time.August, 17), RecurringYearly: true}
	assert.True(t, indep.Includes(Date(2025, time.August, 17)))

	once := DateRange{From: Date(2025, time.August, 17), To: Date(2025, time.August, 18)}
	assert.False(t, once.Includes(Date(2026, time.August, 17)))
	assert.True(t, once.Includes(Date(2025, time.August, 18)))
}
