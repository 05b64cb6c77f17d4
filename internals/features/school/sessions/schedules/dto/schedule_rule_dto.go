// file: internals/features/school/sessions/schedules/dto/schedule_rule_dto.go
package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	model "schoolops_backend/internals/features/school/sessions/schedules/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	"schoolops_backend/internals/helpers/dbtime"
)

/* =========================================================
   1) REQUESTS
   ========================================================= */

type ScheduleRuleItem struct {
	DayOfWeek pattern.Weekday `json:"day_of_week" validate:"required"`
	StartTime string          `json:"start_time"  validate:"required"`
	EndTime   string          `json:"end_time"    validate:"required"`
}

// PUT: seluruh pola mingguan kelas diganti
type ReplaceScheduleRulesRequest struct {
	Rules []ScheduleRuleItem `json:"rules" validate:"required,min=1,max=7,dive"`
}

// Check: validasi lintas field (jam & duplikat hari). Key = path field.
func (r *ReplaceScheduleRulesRequest) Check() map[string][]string {
	errs := map[string][]string{}
	seen := map[pattern.Weekday]bool{}
	for i, it := range r.Rules {
		key := "rules[" + strconv.Itoa(i) + "]"
		if seen[it.DayOfWeek] {
			errs[key+".day_of_week"] = append(errs[key+".day_of_week"], "duplicate")
		}
		seen[it.DayOfWeek] = true

		start, err1 := dbtime.Parse(it.StartTime)
		if err1 != nil {
			errs[key+".start_time"] = append(errs[key+".start_time"], "time")
		}
		end, err2 := dbtime.Parse(it.EndTime)
		if err2 != nil {
			errs[key+".end_time"] = append(errs[key+".end_time"], "time")
		}
		if err1 == nil && err2 == nil && !start.Before(end) {
			errs[key+".end_time"] = append(errs[key+".end_time"], "gtfield=start_time")
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ToModels: panggil setelah Check() lolos.
func (r *ReplaceScheduleRulesRequest) ToModels(classID uuid.UUID) []model.ClassScheduleRuleModel {
	out := make([]model.ClassScheduleRuleModel, 0, len(r.Rules))
	for _, it := range r.Rules {
		out = append(out, model.ClassScheduleRuleModel{
			ClassScheduleRuleID:        uuid.New(),
			ClassScheduleRuleClassID:   classID,
			ClassScheduleRuleDayOfWeek: it.DayOfWeek,
			ClassScheduleRuleStartTime: dbtime.MustParse(it.StartTime),
			ClassScheduleRuleEndTime:   dbtime.MustParse(it.EndTime),
		})
	}
	return out
}

type CreateHolidayRequest struct {
	StartDate         string  `json:"holiday_start_date"          validate:"required,datetime=2006-01-02"`
	EndDate           string  `json:"holiday_end_date"            validate:"required,datetime=2006-01-02"`
	Title             string  `json:"holiday_title"               validate:"required,max=200"`
	Reason            *string `json:"holiday_reason"              validate:"omitempty"`
	IsRecurringYearly bool    `json:"holiday_is_recurring_yearly"`
}

func (r *CreateHolidayRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Reason != nil {
		v := strings.TrimSpace(*r.Reason)
		if v == "" {
			r.Reason = nil
		} else {
			r.Reason = &v
		}
	}
}

// ToModel: ok=false kalau end < start.
func (r *CreateHolidayRequest) ToModel() (model.HolidayModel, bool) {
	start, err1 := time.Parse("2006-01-02", r.StartDate)
	end, err2 := time.Parse("2006-01-02", r.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return model.HolidayModel{}, false
	}
	return model.HolidayModel{
		HolidayID:                uuid.New(),
		HolidayStartDate:         start,
		HolidayEndDate:           end,
		HolidayTitle:             r.Title,
		HolidayReason:            r.Reason,
		HolidayIsActive:          true,
		HolidayIsRecurringYearly: r.IsRecurringYearly,
	}, true
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ScheduleRuleResponse struct {
	ID        uuid.UUID       `json:"class_schedule_rule_id"`
	ClassID   uuid.UUID       `json:"class_schedule_rule_class_id"`
	DayOfWeek pattern.Weekday `json:"class_schedule_rule_day_of_week"`
	StartTime string          `json:"class_schedule_rule_start_time"`
	EndTime   string          `json:"class_schedule_rule_end_time"`
}

func FromRuleModels(rows []model.ClassScheduleRuleModel) []ScheduleRuleResponse {
	out := make([]ScheduleRuleResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, ScheduleRuleResponse{
			ID:        m.ClassScheduleRuleID,
			ClassID:   m.ClassScheduleRuleClassID,
			DayOfWeek: m.ClassScheduleRuleDayOfWeek,
			StartTime: m.ClassScheduleRuleStartTime.String(),
			EndTime:   m.ClassScheduleRuleEndTime.String(),
		})
	}
	return out
}
