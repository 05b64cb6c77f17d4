// file: internals/features/school/sessions/sessions/service/replenish.go
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

// AuditResult = ringkasan jumlah sesi valid vs total syllabus.
type AuditResult struct {
	ClassID    uuid.UUID `json:"class_id"`
	ValidCount int       `json:"valid_count"`
	Total      int       `json:"total"`
	Deficit    int       `json:"deficit"`
}

// Violation != nil kalau sesi valid lebih banyak dari total.
func (a AuditResult) Violation() *InvariantViolation {
	if a.Deficit >= 0 {
		return nil
	}
	return &InvariantViolation{ClassID: a.ClassID, ValidCount: a.ValidCount, Total: a.Total}
}

func Audit(classID uuid.UUID, sessions []*sessModel.ClassLessonSessionModel, total int) AuditResult {
	valid := 0
	for _, s := range sessions {
		if s != nil && s.IsValid() {
			valid++
		}
	}
	return AuditResult{ClassID: classID, ValidCount: valid, Total: total, Deficit: total - valid}
}

/* =========================
   Replenishment
========================= */

// PlanReplenishment menambah sesi baru di ekor sebanyak deficit.
// Nomor urut lanjut dari max(existing)+1, tanggal dari sesi valid terakhir.
// Unit syllabus yang belum dipegang sesi valid ikut dipindah ke sesi baru.
func PlanReplenishment(
	classID uuid.UUID,
	classStart time.Time,
	sessions []*sessModel.ClassLessonSessionModel,
	syl Syllabus,
	pat pattern.Pattern,
) ([]*sessModel.ClassLessonSessionModel, error) {
	audit := Audit(classID, sessions, syl.TotalSessions)
	if audit.Deficit <= 0 {
		return nil, nil
	}

	maxSeq := 0
	var lastValid, lastAny time.Time
	covered := map[uuid.UUID]bool{}
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if s.ClassLessonSessionSequenceNumber > maxSeq {
			maxSeq = s.ClassLessonSessionSequenceNumber
		}
		d := pattern.Day(s.ClassLessonSessionScheduledDate)
		if d.After(lastAny) {
			lastAny = d
		}
		if !s.IsValid() {
			continue
		}
		if d.After(lastValid) {
			lastValid = d
		}
		if s.ClassLessonSessionLessonUnitID != nil {
			covered[*s.ClassLessonSessionLessonUnitID] = true
		}
	}

	var pending []sylModel.SyllabusUnitModel
	for _, u := range syl.Units {
		if !covered[u.SyllabusUnitID] {
			pending = append(pending, u)
		}
	}

	var (
		day  time.Time
		rule pattern.Rule
		err  error
	)
	anchor := lastValid
	if anchor.IsZero() {
		anchor = lastAny
	}

	out := make([]*sessModel.ClassLessonSessionModel, 0, audit.Deficit)
	for i := 0; i < audit.Deficit; i++ {
		switch {
		case i > 0:
			day, rule, err = pat.NextOccurrence(day)
		case anchor.IsZero():
			day, rule, err = pat.FirstOnOrAfter(classStart)
		default:
			day, rule, err = pat.NextOccurrence(anchor)
		}
		if err != nil {
			return nil, fmt.Errorf("append session #%d: %w", maxSeq+i+1, err)
		}
		var unit *sylModel.SyllabusUnitModel
		if i < len(pending) {
			unit = &pending[i]
		}
		out = append(out, newDraft(classID, maxSeq+i+1, day, rule, unit))
	}
	return out, nil
}

/* =========================
   Purge (maintenance)
========================= */

// PlanPurge memilih sesi kelebihan yang aman dihapus: valid, masih scheduled,
// tanpa absensi, dan nomor urutnya di luar total syllabus. Yang terbesar dulu.
func PlanPurge(
	classID uuid.UUID,
	sessions []*sessModel.ClassLessonSessionModel,
	attended map[uuid.UUID]bool,
	total int,
) []*sessModel.ClassLessonSessionModel {
	audit := Audit(classID, sessions, total)
	if audit.Deficit >= 0 {
		return nil
	}

	var cand []*sessModel.ClassLessonSessionModel
	for _, s := range sessions {
		if s == nil || !isMovable(s, attended) {
			continue
		}
		if s.ClassLessonSessionSequenceNumber > total {
			cand = append(cand, s)
		}
	}
	sort.Slice(cand, func(i, j int) bool {
		return cand[i].ClassLessonSessionSequenceNumber > cand[j].ClassLessonSessionSequenceNumber
	})
	if excess := -audit.Deficit; len(cand) > excess {
		cand = cand[:excess]
	}
	return cand
}
