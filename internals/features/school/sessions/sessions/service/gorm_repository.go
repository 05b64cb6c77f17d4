// file: internals/features/school/sessions/sessions/service/gorm_repository.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	schedModel "schoolops_backend/internals/features/school/sessions/schedules/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

const defaultBatchSize = 200

type GormRepository struct {
	DB        *gorm.DB
	BatchSize int
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db, BatchSize: defaultBatchSize}
}

// mapDBError: 23505 (unique_violation) → ErrDuplicateSession, sisanya apa adanya.
func mapDBError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", ErrDuplicateSession, pgErr.ConstraintName)
	}
	return err
}

func loadClass(db *gorm.DB, classID uuid.UUID) (classModel.ClassModel, error) {
	var class classModel.ClassModel
	err := db.Where("class_id = ?", classID).Take(&class).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return class, ErrClassNotFound
	}
	return class, err
}

func (r *GormRepository) InClassTx(ctx context.Context, classID uuid.UUID, fn func(tx TxRepository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		class, err := loadClass(tx.Clauses(clause.Locking{Strength: "UPDATE"}), classID)
		if err != nil {
			return err
		}
		return fn(&gormTx{db: tx, class: class, batch: r.BatchSize})
	})
}

func (r *GormRepository) ReadClass(ctx context.Context, classID uuid.UUID, fn func(tx TxRepository) error) error {
	db := r.DB.WithContext(ctx)
	class, err := loadClass(db, classID)
	if err != nil {
		return err
	}
	return fn(&gormTx{db: db, class: class, batch: r.BatchSize})
}

func (r *GormRepository) SessionClassID(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.DB.WithContext(ctx).
		Model(&sessModel.ClassLessonSessionModel{}).
		Where("class_lesson_session_id = ?", sessionID).
		Limit(1).
		Pluck("class_lesson_session_class_id", &ids).Error; err != nil {
		return uuid.Nil, err
	}
	if len(ids) == 0 {
		return uuid.Nil, ErrSessionNotFound
	}
	return ids[0], nil
}

/* =========================
   Tx-bound repository
========================= */

type gormTx struct {
	db    *gorm.DB
	class classModel.ClassModel
	batch int
}

func (t *gormTx) Class() classModel.ClassModel { return t.class }

func (t *gormTx) Syllabus(syllabusID uuid.UUID) (Syllabus, error) {
	var syl sylModel.SyllabusModel
	err := t.db.Where("syllabus_id = ?", syllabusID).Take(&syl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Syllabus{}, fmt.Errorf("%w: syllabus %s not found", ErrInvalidSyllabus, syllabusID)
	}
	if err != nil {
		return Syllabus{}, err
	}
	var units []sylModel.SyllabusUnitModel
	if err := t.db.
		Where("syllabus_unit_syllabus_id = ?", syllabusID).
		Order("syllabus_unit_sequence_number ASC").
		Find(&units).Error; err != nil {
		return Syllabus{}, err
	}
	return NewSyllabus(syl, units), nil
}

func (t *gormTx) Rules() ([]pattern.Rule, error) {
	var rows []schedModel.ClassScheduleRuleModel
	// urutan buat: rule pertama per hari yang menang
	if err := t.db.
		Where("class_schedule_rule_class_id = ?", t.class.ClassID).
		Order("class_schedule_rule_created_at ASC, class_schedule_rule_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return schedModel.ToRules(rows), nil
}

func (t *gormTx) Holidays() ([]pattern.DateRange, error) {
	var rows []schedModel.HolidayModel
	if err := t.db.Where("holiday_is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]pattern.DateRange, 0, len(rows))
	for _, h := range rows {
		out = append(out, h.ToDateRange())
	}
	return out, nil
}

func (t *gormTx) Sessions() ([]*sessModel.ClassLessonSessionModel, error) {
	var rows []*sessModel.ClassLessonSessionModel
	if err := t.db.
		Where("class_lesson_session_class_id = ?", t.class.ClassID).
		Order("class_lesson_session_sequence_number ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *gormTx) AttendedSessions(ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	if len(ids) == 0 {
		return out, nil
	}
	var got []uuid.UUID
	if err := t.db.
		Model(&sessModel.UserAttendanceModel{}).
		Distinct("user_attendance_session_id").
		Where("user_attendance_session_id IN ?", ids).
		Pluck("user_attendance_session_id", &got).Error; err != nil {
		return nil, err
	}
	for _, id := range got {
		out[id] = true
	}
	return out, nil
}

func (t *gormTx) InsertSessions(rows []*sessModel.ClassLessonSessionModel) error {
	if len(rows) == 0 {
		return nil
	}
	batch := t.batch
	if batch <= 0 {
		batch = defaultBatchSize
	}
	return mapDBError(t.db.CreateInBatches(rows, batch).Error)
}

// UpdateSessions hanya menulis kolom slot & lifecycle.
func (t *gormTx) UpdateSessions(rows []*sessModel.ClassLessonSessionModel) error {
	now := time.Now()
	for _, s := range rows {
		res := t.db.Model(&sessModel.ClassLessonSessionModel{}).
			Where("class_lesson_session_id = ?", s.ClassLessonSessionID).
			Updates(map[string]any{
				"class_lesson_session_scheduled_date":      s.ClassLessonSessionScheduledDate,
				"class_lesson_session_start_time":          s.ClassLessonSessionStartTime,
				"class_lesson_session_end_time":            s.ClassLessonSessionEndTime,
				"class_lesson_session_rule_id":             s.ClassLessonSessionRuleID,
				"class_lesson_session_status":              s.ClassLessonSessionStatus,
				"class_lesson_session_cancellation_reason": s.ClassLessonSessionCancellationReason,
				"class_lesson_session_cancelled_at":        s.ClassLessonSessionCancelledAt,
				"class_lesson_session_updated_at":          now,
			})
		if res.Error != nil {
			return mapDBError(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", ErrSessionNotFound, s.ClassLessonSessionID)
		}
	}
	return nil
}

// DeleteSessions hard delete; nomor urut harus bisa dipakai lagi.
func (t *gormTx) DeleteSessions(ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return t.db.Unscoped().
		Where("class_lesson_session_id IN ?", ids).
		Delete(&sessModel.ClassLessonSessionModel{}).Error
}

func (t *gormTx) InsertRescheduleLog(row *sessModel.ClassSessionRescheduleLogModel) error {
	return t.db.Create(row).Error
}
