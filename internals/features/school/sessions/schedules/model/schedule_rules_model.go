// internals/features/school/sessions/schedules/model/schedule_rules_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	"schoolops_backend/internals/helpers/dbtime"
)

// ClassScheduleRuleModel = pola mingguan milik satu kelas (hari + jam).
type ClassScheduleRuleModel struct {
	ClassScheduleRuleID      uuid.UUID `json:"class_schedule_rule_id"       gorm:"column:class_schedule_rule_id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ClassScheduleRuleClassID uuid.UUID `json:"class_schedule_rule_class_id" gorm:"column:class_schedule_rule_class_id;type:uuid;not null;index"`

	// Pola mingguan, 1..7 (ISO)
	ClassScheduleRuleDayOfWeek pattern.Weekday `json:"class_schedule_rule_day_of_week" gorm:"column:class_schedule_rule_day_of_week;type:smallint;not null"`
	ClassScheduleRuleStartTime dbtime.Tod      `json:"class_schedule_rule_start_time"  gorm:"column:class_schedule_rule_start_time;type:time;not null"`
	ClassScheduleRuleEndTime   dbtime.Tod      `json:"class_schedule_rule_end_time"    gorm:"column:class_schedule_rule_end_time;type:time;not null"`

	// Audit
	ClassScheduleRuleCreatedAt time.Time      `json:"class_schedule_rule_created_at" gorm:"column:class_schedule_rule_created_at;type:timestamptz;not null;autoCreateTime"`
	ClassScheduleRuleUpdatedAt time.Time      `json:"class_schedule_rule_updated_at" gorm:"column:class_schedule_rule_updated_at;type:timestamptz;not null;autoUpdateTime"`
	ClassScheduleRuleDeletedAt gorm.DeletedAt `json:"class_schedule_rule_deleted_at,omitempty" gorm:"column:class_schedule_rule_deleted_at;index"`
}

func (ClassScheduleRuleModel) TableName() string { return "class_schedule_rules" }

func (m ClassScheduleRuleModel) ToRule() pattern.Rule {
	return pattern.Rule{
		ID:      m.ClassScheduleRuleID,
		Weekday: m.ClassScheduleRuleDayOfWeek,
		Start:   m.ClassScheduleRuleStartTime,
		End:     m.ClassScheduleRuleEndTime,
	}
}

func ToRules(ms []ClassScheduleRuleModel) []pattern.Rule {
	out := make([]pattern.Rule, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.ToRule())
	}
	return out
}
