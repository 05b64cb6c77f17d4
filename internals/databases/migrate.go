package database

import (
	"log"

	"gorm.io/gorm"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	schedModel "schoolops_backend/internals/features/school/sessions/schedules/model"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

// AutoMigrate membuat/menyesuaikan tabel engine sesi.
// Unique (class_id, sequence_number) ikut dibuat lewat tag uniqueIndex.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&sylModel.SyllabusModel{},
		&sylModel.SyllabusUnitModel{},
		&classModel.ClassModel{},
		&schedModel.ClassScheduleRuleModel{},
		&schedModel.HolidayModel{},
		&sessModel.ClassLessonSessionModel{},
		&sessModel.UserAttendanceModel{},
		&sessModel.ClassSessionRescheduleLogModel{},
	)
	if err != nil {
		return err
	}
	log.Println("✅ AutoMigrate selesai.")
	return nil
}
