// file: internals/features/school/sessions/sessions/service/service.go
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
)

/* =========================
   Service + Options
========================= */

type Service struct {
	Repo     Repository
	Listener SessionListener

	horizon int
	now     func() time.Time
	locks   *classLocker
}

type Option func(*Service)

func WithListener(l SessionListener) Option { return func(s *Service) { s.Listener = l } }

// WithHorizon: jumlah hari (non-libur) yang discan NextOccurrence.
func WithHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.horizon = days
		}
	}
}

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func New(repo Repository, opts ...Option) *Service {
	s := &Service{
		Repo:     repo,
		Listener: LogListener{},
		horizon:  pattern.DefaultHorizonDays,
		now:      time.Now,
		locks:    newClassLocker(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Service) loadPattern(tx TxRepository) (pattern.Pattern, error) {
	rules, err := tx.Rules()
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("load rules: %w", err)
	}
	holidays, err := tx.Holidays()
	if err != nil {
		return pattern.Pattern{}, fmt.Errorf("load holidays: %w", err)
	}
	return pattern.New(rules, pattern.WithHolidays(holidays), pattern.WithHorizon(s.horizon)), nil
}

/* =========================
   Generate
========================= */

// GenerateSessions membuat seluruh sesi kelas dari syllabus dalam satu transaksi.
func (s *Service) GenerateSessions(ctx context.Context, classID uuid.UUID) ([]*sessModel.ClassLessonSessionModel, error) {
	unlock := s.locks.Lock(classID)
	defer unlock()

	var drafts []*sessModel.ClassLessonSessionModel
	err := s.Repo.InClassTx(ctx, classID, func(tx TxRepository) error {
		existing, err := tx.Sessions()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return fmt.Errorf("%w: %d sessions", ErrSessionsAlreadyGenerated, len(existing))
		}
		pat, err := s.loadPattern(tx)
		if err != nil {
			return err
		}
		if pat.Empty() {
			return ErrMissingSchedule
		}
		class := tx.Class()
		syl, err := tx.Syllabus(class.ClassSyllabusID)
		if err != nil {
			return err
		}
		drafts, err = GenerateDrafts(classID, class.ClassStartDate, syl, pat)
		if err != nil {
			return err
		}
		return tx.InsertSessions(drafts)
	})
	if err != nil {
		log.Printf("[LessonSession.Generate] class=%s failed: %v", classID, err)
		return nil, err
	}

	log.Printf("[LessonSession.Generate] class=%s created=%d", classID, len(drafts))
	notify(ctx, s.Listener, SessionEvent{Kind: EventGenerated, ClassID: classID, Created: sessionIDs(drafts)})
	return drafts, nil
}

/* =========================
   Cancel + cascade
========================= */

type CancelResult struct {
	Cancelled   *sessModel.ClassLessonSessionModel   `json:"cancelled"`
	Rescheduled []*sessModel.ClassLessonSessionModel `json:"rescheduled"`
	Changes     []SlotChange                         `json:"changes"`
	Appended    []*sessModel.ClassLessonSessionModel `json:"appended"`
	Audit       AuditResult                          `json:"audit"`
	Violation   *InvariantViolation                  `json:"invariant_violation,omitempty"`
}

type reschedulePayload struct {
	Cancelled Slot         `json:"cancelled"`
	Changes   []SlotChange `json:"changes"`
	Appended  []Slot       `json:"appended"`
}

func buildRescheduleLog(classID uuid.UUID, reason string, res *CancelResult) (*sessModel.ClassSessionRescheduleLogModel, error) {
	moved := make(pq.Int64Array, 0, len(res.Changes))
	p := reschedulePayload{Cancelled: slotOf(res.Cancelled), Changes: res.Changes, Appended: []Slot{}}
	for _, c := range res.Changes {
		moved = append(moved, int64(c.SequenceNumber))
	}
	appended := make(pq.Int64Array, 0, len(res.Appended))
	for _, a := range res.Appended {
		appended = append(appended, int64(a.ClassLessonSessionSequenceNumber))
		p.Appended = append(p.Appended, slotOf(a))
	}
	raw, err := sonic.Marshal(p)
	if err != nil {
		return nil, err
	}
	return &sessModel.ClassSessionRescheduleLogModel{
		ClassSessionRescheduleLogID:                 uuid.New(),
		ClassSessionRescheduleLogClassID:            classID,
		ClassSessionRescheduleLogCancelledSessionID: res.Cancelled.ClassLessonSessionID,
		ClassSessionRescheduleLogReason:             reason,
		ClassSessionRescheduleLogMovedSequences:     moved,
		ClassSessionRescheduleLogAppendedSequences:  appended,
		ClassSessionRescheduleLogPayload:            datatypes.JSON(raw),
	}, nil
}

// CancelSession: batal + cascade + replenish + log dalam satu transaksi.
// Error apa pun → rollback, sesi target tetap scheduled.
func (s *Service) CancelSession(ctx context.Context, sessionID uuid.UUID, reason string) (*CancelResult, error) {
	classID, err := s.Repo.SessionClassID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(classID)
	defer unlock()

	var res *CancelResult
	err = s.Repo.InClassTx(ctx, classID, func(tx TxRepository) error {
		sessions, err := tx.Sessions()
		if err != nil {
			return err
		}
		attended, err := tx.AttendedSessions(sessionIDs(sessions))
		if err != nil {
			return err
		}
		pat, err := s.loadPattern(tx)
		if err != nil {
			return err
		}

		plan, err := PlanCancellation(sessionID, sessions, attended, pat, reason, s.now())
		if err != nil {
			return err
		}

		class := tx.Class()
		syl, err := tx.Syllabus(class.ClassSyllabusID)
		if err != nil {
			return err
		}
		appended, err := PlanReplenishment(classID, class.ClassStartDate, plan.Sessions, syl, pat)
		if err != nil {
			return err
		}

		final := append(append([]*sessModel.ClassLessonSessionModel{}, plan.Sessions...), appended...)
		audit := Audit(classID, final, syl.TotalSessions)
		res = &CancelResult{
			Cancelled:   plan.Cancelled,
			Rescheduled: plan.Rescheduled,
			Changes:     plan.Changes,
			Appended:    appended,
			Audit:       audit,
			Violation:   audit.Violation(),
		}

		updates := append([]*sessModel.ClassLessonSessionModel{plan.Cancelled}, plan.Rescheduled...)
		if err := tx.UpdateSessions(updates); err != nil {
			return err
		}
		if err := tx.InsertSessions(appended); err != nil {
			return err
		}
		entry, err := buildRescheduleLog(classID, *plan.Cancelled.ClassLessonSessionCancellationReason, res)
		if err != nil {
			return err
		}
		return tx.InsertRescheduleLog(entry)
	})
	if err != nil {
		log.Printf("[LessonSession.Cancel] session=%s class=%s rolled back: %v", sessionID, classID, err)
		return nil, err
	}

	if res.Violation != nil {
		log.Printf("[LessonSession.Cancel] class=%s invariant violation: %v", classID, res.Violation)
	}
	log.Printf("[LessonSession.Cancel] session=%s class=%s moved=%d appended=%d valid=%d/%d",
		sessionID, classID, len(res.Rescheduled), len(res.Appended), res.Audit.ValidCount, res.Audit.Total)

	notify(ctx, s.Listener, SessionEvent{
		Kind:    EventCancelled,
		ClassID: classID,
		Created: sessionIDs(res.Appended),
		Updated: append([]uuid.UUID{sessionID}, sessionIDs(res.Rescheduled)...),
	})
	return res, nil
}

/* =========================
   Audit / Purge / List
========================= */

// AuditSessionCount hanya membaca; tidak pernah mengubah data.
func (s *Service) AuditSessionCount(ctx context.Context, classID uuid.UUID) (AuditResult, error) {
	var out AuditResult
	err := s.Repo.ReadClass(ctx, classID, func(tx TxRepository) error {
		sessions, err := tx.Sessions()
		if err != nil {
			return err
		}
		syl, err := tx.Syllabus(tx.Class().ClassSyllabusID)
		if err != nil {
			return err
		}
		out = Audit(classID, sessions, syl.TotalSessions)
		return nil
	})
	if err != nil {
		return AuditResult{}, err
	}
	if v := out.Violation(); v != nil {
		log.Printf("[LessonSession.Audit] %v", v)
	}
	return out, nil
}

type PurgeResult struct {
	Deleted []*sessModel.ClassLessonSessionModel `json:"deleted"`
	Audit   AuditResult                          `json:"audit"`
}

// PurgeExcessSessions menghapus sesi kelebihan (maintenance, dipanggil eksplisit).
func (s *Service) PurgeExcessSessions(ctx context.Context, classID uuid.UUID) (*PurgeResult, error) {
	unlock := s.locks.Lock(classID)
	defer unlock()

	var res PurgeResult
	err := s.Repo.InClassTx(ctx, classID, func(tx TxRepository) error {
		sessions, err := tx.Sessions()
		if err != nil {
			return err
		}
		attended, err := tx.AttendedSessions(sessionIDs(sessions))
		if err != nil {
			return err
		}
		syl, err := tx.Syllabus(tx.Class().ClassSyllabusID)
		if err != nil {
			return err
		}

		res.Deleted = PlanPurge(classID, sessions, attended, syl.TotalSessions)
		if err := tx.DeleteSessions(sessionIDs(res.Deleted)); err != nil {
			return err
		}

		gone := make(map[uuid.UUID]bool, len(res.Deleted))
		for _, d := range res.Deleted {
			gone[d.ClassLessonSessionID] = true
		}
		left := make([]*sessModel.ClassLessonSessionModel, 0, len(sessions))
		for _, x := range sessions {
			if !gone[x.ClassLessonSessionID] {
				left = append(left, x)
			}
		}
		res.Audit = Audit(classID, left, syl.TotalSessions)
		return nil
	})
	if err != nil {
		log.Printf("[LessonSession.Purge] class=%s failed: %v", classID, err)
		return nil, err
	}

	log.Printf("[LessonSession.Purge] class=%s deleted=%d valid=%d/%d",
		classID, len(res.Deleted), res.Audit.ValidCount, res.Audit.Total)
	if len(res.Deleted) > 0 {
		notify(ctx, s.Listener, SessionEvent{Kind: EventPurged, ClassID: classID, Deleted: sessionIDs(res.Deleted)})
	}
	return &res, nil
}

func (s *Service) ListSessions(ctx context.Context, classID uuid.UUID) ([]*sessModel.ClassLessonSessionModel, error) {
	var out []*sessModel.ClassLessonSessionModel
	err := s.Repo.ReadClass(ctx, classID, func(tx TxRepository) error {
		var err error
		out, err = tx.Sessions()
		return err
	})
	return out, err
}
