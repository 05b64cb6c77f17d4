package demo_class

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	schedModel "schoolops_backend/internals/features/school/sessions/schedules/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
	"schoolops_backend/internals/helpers/dbtime"
)

type RuleSeed struct {
	DayOfWeek pattern.Weekday `json:"day_of_week"`
	StartTime dbtime.Tod      `json:"start_time"`
	EndTime   dbtime.Tod      `json:"end_time"`
}

type DemoClassSeed struct {
	ClassName     string     `json:"class_name"`
	StartDate     string     `json:"start_date"` // YYYY-MM-DD
	SyllabusTitle string     `json:"syllabus_title"`
	Lessons       []string   `json:"lessons"`
	Rules         []RuleSeed `json:"rules"`
}

func LoadDemoClasses(filePath string) ([]DemoClassSeed, error) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	var out []DemoClassSeed
	if err := sonic.Unmarshal(file, &out); err != nil {
		return nil, err
	}
	for i, s := range out {
		if s.ClassName == "" || len(s.Lessons) == 0 || len(s.Rules) == 0 {
			return nil, fmt.Errorf("seed #%d: class_name, lessons, rules wajib diisi", i)
		}
		if _, err := time.Parse("2006-01-02", s.StartDate); err != nil {
			return nil, fmt.Errorf("seed #%d: start_date: %w", i, err)
		}
	}
	return out, nil
}

// SeedDemoClassesFromJSON: kelas + silabus + pola mingguan untuk uji coba lokal.
// Sesi tidak dibuat di sini, panggil endpoint generate.
func SeedDemoClassesFromJSON(db *gorm.DB, filePath string) {
	log.Println("📥 Membaca file:", filePath)

	seeds, err := LoadDemoClasses(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca seed kelas: %v", err)
	}

	for _, s := range seeds {
		var existing classModel.ClassModel
		if err := db.Where("class_name = ?", s.ClassName).First(&existing).Error; err == nil {
			log.Printf("ℹ️ Kelas %s sudah ada, lewati...", s.ClassName)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return insertDemoClass(tx, s)
		})
		if err != nil {
			log.Printf("❌ Gagal insert kelas %s: %v", s.ClassName, err)
		} else {
			log.Printf("✅ Berhasil insert kelas %s (%d sesi)", s.ClassName, len(s.Lessons))
		}
	}
}

func insertDemoClass(tx *gorm.DB, s DemoClassSeed) error {
	start, _ := time.Parse("2006-01-02", s.StartDate)

	syl := sylModel.SyllabusModel{
		SyllabusID:            uuid.New(),
		SyllabusTitle:         s.SyllabusTitle,
		SyllabusTotalSessions: len(s.Lessons),
	}
	if err := tx.Create(&syl).Error; err != nil {
		return err
	}

	units := make([]sylModel.SyllabusUnitModel, 0, len(s.Lessons))
	for i, title := range s.Lessons {
		units = append(units, sylModel.SyllabusUnitModel{
			SyllabusUnitID:             uuid.New(),
			SyllabusUnitSyllabusID:     syl.SyllabusID,
			SyllabusUnitSequenceNumber: i + 1,
			SyllabusUnitLessonTitle:    title,
		})
	}
	if err := tx.CreateInBatches(&units, 200).Error; err != nil {
		return err
	}

	class := classModel.ClassModel{
		ClassID:         uuid.New(),
		ClassName:       s.ClassName,
		ClassSyllabusID: syl.SyllabusID,
		ClassStartDate:  start,
	}
	if err := tx.Create(&class).Error; err != nil {
		return err
	}

	rules := make([]schedModel.ClassScheduleRuleModel, 0, len(s.Rules))
	for _, r := range s.Rules {
		rules = append(rules, schedModel.ClassScheduleRuleModel{
			ClassScheduleRuleClassID:   class.ClassID,
			ClassScheduleRuleDayOfWeek: r.DayOfWeek,
			ClassScheduleRuleStartTime: r.StartTime,
			ClassScheduleRuleEndTime:   r.EndTime,
		})
	}
	return tx.Create(&rules).Error
}
