// file: internals/features/school/sessions/sessions/service/cascade.go
package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	"schoolops_backend/internals/helpers/dbtime"
)

// Slot = posisi kalender satu sesi.
type Slot struct {
	Date  time.Time  `json:"date"`
	Start dbtime.Tod `json:"start_time"`
	End   dbtime.Tod `json:"end_time"`
}

func slotOf(s *sessModel.ClassLessonSessionModel) Slot {
	return Slot{
		Date:  pattern.Day(s.ClassLessonSessionScheduledDate),
		Start: s.ClassLessonSessionStartTime,
		End:   s.ClassLessonSessionEndTime,
	}
}

func (a Slot) Equal(b Slot) bool {
	return a.Date.Equal(b.Date) && a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

// SlotChange mencatat pergeseran satu sesi oleh cascade.
type SlotChange struct {
	SessionID      uuid.UUID `json:"session_id"`
	SequenceNumber int       `json:"sequence_number"`
	From           Slot      `json:"from"`
	To             Slot      `json:"to"`
}

// CancellationPlan = hasil hitung cascade di memori, belum ditulis ke DB.
type CancellationPlan struct {
	Cancelled   *sessModel.ClassLessonSessionModel
	Rescheduled []*sessModel.ClassLessonSessionModel
	Changes     []SlotChange
	// Sessions = seluruh sesi kelas (salinan) setelah plan diterapkan, urut sequence.
	Sessions []*sessModel.ClassLessonSessionModel
}

func cloneSessions(in []*sessModel.ClassLessonSessionModel) []*sessModel.ClassLessonSessionModel {
	out := make([]*sessModel.ClassLessonSessionModel, 0, len(in))
	for _, s := range in {
		if s == nil {
			continue
		}
		c := *s
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClassLessonSessionSequenceNumber < out[j].ClassLessonSessionSequenceNumber
	})
	return out
}

func isMovable(s *sessModel.ClassLessonSessionModel, attended map[uuid.UUID]bool) bool {
	return s.ClassLessonSessionStatus == sessModel.SessionScheduled && !attended[s.ClassLessonSessionID]
}

/* =========================
   PlanCancellation
========================= */

// PlanCancellation membatalkan target lalu menggeser sesi setelahnya yang masih
// bisa dipindah ke pertemuan berikutnya dari anchor yang terus maju.
// Input tidak diubah; semua perubahan ada di salinan dalam plan.
func PlanCancellation(
	targetID uuid.UUID,
	sessions []*sessModel.ClassLessonSessionModel,
	attended map[uuid.UUID]bool,
	pat pattern.Pattern,
	reason string,
	now time.Time,
) (*CancellationPlan, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	all := cloneSessions(sessions)
	var target *sessModel.ClassLessonSessionModel
	for _, s := range all {
		if s.ClassLessonSessionID == targetID {
			target = s
			break
		}
	}
	if target == nil {
		return nil, ErrSessionNotFound
	}
	if target.ClassLessonSessionStatus != sessModel.SessionScheduled {
		return nil, fmt.Errorf("%w: session #%d is %s",
			ErrSessionNotScheduled, target.ClassLessonSessionSequenceNumber, target.ClassLessonSessionStatus)
	}
	if attended[target.ClassLessonSessionID] {
		return nil, fmt.Errorf("%w: session #%d", ErrAttendanceConflict, target.ClassLessonSessionSequenceNumber)
	}

	anchor := pattern.Day(target.ClassLessonSessionScheduledDate)
	target.ClassLessonSessionStatus = sessModel.SessionCancelled
	target.ClassLessonSessionCancellationReason = ptr(reason)
	target.ClassLessonSessionCancelledAt = ptr(now)

	// tanggal milik sesi yang tidak boleh digeser (completed / sudah ada absensi)
	pinned := map[time.Time]bool{}
	for _, s := range all {
		if s.IsValid() && !isMovable(s, attended) {
			pinned[pattern.Day(s.ClassLessonSessionScheduledDate)] = true
		}
	}

	plan := &CancellationPlan{Cancelled: target, Sessions: all}
	for _, s := range all {
		if s.ClassLessonSessionSequenceNumber <= target.ClassLessonSessionSequenceNumber || !s.IsValid() {
			continue
		}
		if !isMovable(s, attended) {
			if d := pattern.Day(s.ClassLessonSessionScheduledDate); d.After(anchor) {
				anchor = d
			}
			continue
		}

		next, rule, err := pat.NextOccurrence(anchor)
		for err == nil && pinned[next] {
			next, rule, err = pat.NextOccurrence(next)
		}
		if err != nil {
			return nil, fmt.Errorf("reschedule session #%d: %w", s.ClassLessonSessionSequenceNumber, err)
		}

		before := slotOf(s)
		applySlot(s, next, rule)
		anchor = next
		if after := slotOf(s); !after.Equal(before) {
			plan.Rescheduled = append(plan.Rescheduled, s)
			plan.Changes = append(plan.Changes, SlotChange{
				SessionID:      s.ClassLessonSessionID,
				SequenceNumber: s.ClassLessonSessionSequenceNumber,
				From:           before,
				To:             after,
			})
		}
	}
	return plan, nil
}
