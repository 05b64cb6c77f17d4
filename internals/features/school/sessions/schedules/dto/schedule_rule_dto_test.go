package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	helper "schoolops_backend/internals/helpers"
)

func TestReplaceScheduleRulesRequest_Decode(t *testing.T) {
	var req ReplaceScheduleRulesRequest
	raw := `{"rules":[{"day_of_week":"monday","start_time":"18:00","end_time":"19:30"},{"day_of_week":"fri","start_time":"08:00:00","end_time":"09:00"}]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &req))
	require.NoError(t, helper.NewValidator().Struct(&req))
	assert.Nil(t, req.Check())

	rows := req.ToModels(uuid.New())
	require.Len(t, rows, 2)
	assert.Equal(t, pattern.Monday, rows[0].ClassScheduleRuleDayOfWeek)
	assert.Equal(t, pattern.Friday, rows[1].ClassScheduleRuleDayOfWeek)
	assert.Equal(t, "19:30:00", rows[0].ClassScheduleRuleEndTime.String())
}

func TestReplaceScheduleRulesRequest_RejectsNumericWeekday(t *testing.T) {
	var req ReplaceScheduleRulesRequest
	err := json.Unmarshal([]byte(`{"rules":[{"day_of_week":1,"start_time":"18:00","end_time":"19:00"}]}`), &req)
	assert.Error(t, err)
}

func TestReplaceScheduleRulesRequest_Check(t *testing.T) {
	req := ReplaceScheduleRulesRequest{Rules: []ScheduleRuleItem{
		{DayOfWeek: pattern.Monday, StartTime: "18:00", EndTime: "17:00"},
		{DayOfWeek: pattern.Monday, StartTime: "xx", EndTime: "19:00"},
	}}
	errs := req.Check()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "rules[0].end_time")
	assert.Contains(t, errs, "rules[1].day_of_week")
	assert.Contains(t, errs, "rules[1].start_time")
}

func TestReplaceScheduleRulesRequest_Validator(t *testing.T) {
	v := helper.NewValidator()
	assert.Error(t, v.Struct(&ReplaceScheduleRulesRequest{}))
	assert.Error(t, v.Struct(&ReplaceScheduleRulesRequest{Rules: []ScheduleRuleItem{{StartTime: "08:00", EndTime: "09:00"}}}))
}

func TestCreateHolidayRequest_ToModel(t *testing.T) {
	reason := "  "
	req := CreateHolidayRequest{StartDate: "2025-12-24", EndDate: "2025-12-26", Title: " Christmas ", Reason: &reason}
	req.Normalize()
	require.NoError(t, helper.NewValidator().Struct(&req))

	m, ok := req.ToModel()
	require.True(t, ok)
	assert.Equal(t, "Christmas", m.HolidayTitle)
	assert.Nil(t, m.HolidayReason)
	assert.True(t, m.ToDateRange().Includes(pattern.Date(2025, 12, 25)))

	bad := CreateHolidayRequest{StartDate: "2025-12-26", EndDate: "2025-12-24", Title: "x"}
	_, ok = bad.ToModel()
	assert.False(t, ok)
}
