// file: internals/features/school/sessions/sessions/storage/memory/repository.go
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	classModel "schoolops_backend/internals/features/school/classes/classes/model"
	"schoolops_backend/internals/features/school/sessions/schedules/pattern"
	sessModel "schoolops_backend/internals/features/school/sessions/sessions/model"
	"schoolops_backend/internals/features/school/sessions/sessions/service"
	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

// Repository = implementasi in-memory untuk test & dev lokal.
// Transaksi dibuat dengan staging copy; commit hanya kalau fn sukses.
type Repository struct {
	mu sync.Mutex

	classes    map[uuid.UUID]classModel.ClassModel
	syllabi    map[uuid.UUID]service.Syllabus
	rules      map[uuid.UUID][]pattern.Rule
	holidays   []pattern.DateRange
	sessions   map[uuid.UUID][]*sessModel.ClassLessonSessionModel // per kelas
	attendance map[uuid.UUID]int
	logs       []sessModel.ClassSessionRescheduleLogModel

	// BeforeCommit dipanggil tepat sebelum commit; error → rollback.
	BeforeCommit func(classID uuid.UUID) error
}

var _ service.Repository = (*Repository)(nil)

func New() *Repository {
	return &Repository{
		classes:    map[uuid.UUID]classModel.ClassModel{},
		syllabi:    map[uuid.UUID]service.Syllabus{},
		rules:      map[uuid.UUID][]pattern.Rule{},
		sessions:   map[uuid.UUID][]*sessModel.ClassLessonSessionModel{},
		attendance: map[uuid.UUID]int{},
	}
}

/* =========================
   Seeding
========================= */

func (r *Repository) AddSyllabus(s sylModel.SyllabusModel, units []sylModel.SyllabusUnitModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.syllabi[s.SyllabusID] = service.NewSyllabus(s, units)
}

func (r *Repository) AddClass(c classModel.ClassModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.classes[c.ClassID] = c
}

func (r *Repository) SetRules(classID uuid.UUID, rules []pattern.Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[classID] = append([]pattern.Rule(nil), rules...)
}

func (r *Repository) AddHoliday(h pattern.DateRange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.holidays = append(r.holidays, h)
}

func (r *Repository) AddSessions(rows ...*sessModel.ClassLessonSessionModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range rows {
		c := *s
		r.sessions[c.ClassLessonSessionClassID] = append(r.sessions[c.ClassLessonSessionClassID], &c)
	}
}

func (r *Repository) AddAttendance(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attendance[sessionID]++
}

// Sessions mengembalikan salinan sesi kelas, urut sequence.
func (r *Repository) Sessions(classID uuid.UUID) []*sessModel.ClassLessonSessionModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSorted(r.sessions[classID])
}

func (r *Repository) Logs() []sessModel.ClassSessionRescheduleLogModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sessModel.ClassSessionRescheduleLogModel(nil), r.logs...)
}

func cloneSorted(in []*sessModel.ClassLessonSessionModel) []*sessModel.ClassLessonSessionModel {
	out := make([]*sessModel.ClassLessonSessionModel, 0, len(in))
	for _, s := range in {
		c := *s
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClassLessonSessionSequenceNumber < out[j].ClassLessonSessionSequenceNumber
	})
	return out
}

/* =========================
   service.Repository
========================= */

func (r *Repository) InClassTx(ctx context.Context, classID uuid.UUID, fn func(tx service.TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	class, ok := r.classes[classID]
	if !ok {
		return service.ErrClassNotFound
	}

	tx := &memTx{repo: r, class: class, sessions: cloneSorted(r.sessions[classID])}
	if err := fn(tx); err != nil {
		return err
	}
	if r.BeforeCommit != nil {
		if err := r.BeforeCommit(classID); err != nil {
			return err
		}
	}
	r.sessions[classID] = tx.sessions
	r.logs = append(r.logs, tx.logs...)
	return nil
}

func (r *Repository) ReadClass(ctx context.Context, classID uuid.UUID, fn func(tx service.TxRepository) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	class, ok := r.classes[classID]
	if !ok {
		return service.ErrClassNotFound
	}
	// staging dibuang: ReadClass tidak pernah commit
	return fn(&memTx{repo: r, class: class, sessions: cloneSorted(r.sessions[classID])})
}

func (r *Repository) SessionClassID(ctx context.Context, sessionID uuid.UUID) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return uuid.Nil, err
	}
	for classID, rows := range r.sessions {
		for _, s := range rows {
			if s.ClassLessonSessionID == sessionID {
				return classID, nil
			}
		}
	}
	return uuid.Nil, service.ErrSessionNotFound
}

/* =========================
   Tx
========================= */

// memTx dipakai saat r.mu sudah dipegang.
type memTx struct {
	repo     *Repository
	class    classModel.ClassModel
	sessions []*sessModel.ClassLessonSessionModel
	logs     []sessModel.ClassSessionRescheduleLogModel
}

func (t *memTx) Class() classModel.ClassModel { return t.class }

func (t *memTx) Syllabus(id uuid.UUID) (service.Syllabus, error) {
	s, ok := t.repo.syllabi[id]
	if !ok {
		return service.Syllabus{}, fmt.Errorf("%w: syllabus %s not found", service.ErrInvalidSyllabus, id)
	}
	return s, nil
}

func (t *memTx) Rules() ([]pattern.Rule, error) {
	return append([]pattern.Rule(nil), t.repo.rules[t.class.ClassID]...), nil
}

func (t *memTx) Holidays() ([]pattern.DateRange, error) {
	return append([]pattern.DateRange(nil), t.repo.holidays...), nil
}

func (t *memTx) Sessions() ([]*sessModel.ClassLessonSessionModel, error) {
	return cloneSorted(t.sessions), nil
}

func (t *memTx) AttendedSessions(ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := make(map[uuid.UUID]bool)
	for _, id := range ids {
		if t.repo.attendance[id] > 0 {
			out[id] = true
		}
	}
	return out, nil
}

func (t *memTx) InsertSessions(rows []*sessModel.ClassLessonSessionModel) error {
	seen := make(map[int]bool, len(t.sessions))
	for _, s := range t.sessions {
		seen[s.ClassLessonSessionSequenceNumber] = true
	}
	for _, s := range rows {
		if seen[s.ClassLessonSessionSequenceNumber] {
			return fmt.Errorf("%w: class=%s seq=%d", service.ErrDuplicateSession,
				s.ClassLessonSessionClassID, s.ClassLessonSessionSequenceNumber)
		}
		seen[s.ClassLessonSessionSequenceNumber] = true
		c := *s
		t.sessions = append(t.sessions, &c)
	}
	return nil
}

func (t *memTx) UpdateSessions(rows []*sessModel.ClassLessonSessionModel) error {
	for _, s := range rows {
		found := false
		for i, cur := range t.sessions {
			if cur.ClassLessonSessionID == s.ClassLessonSessionID {
				c := *s
				t.sessions[i] = &c
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", service.ErrSessionNotFound, s.ClassLessonSessionID)
		}
	}
	return nil
}

func (t *memTx) DeleteSessions(ids []uuid.UUID) error {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := t.sessions[:0]
	for _, s := range t.sessions {
		if !drop[s.ClassLessonSessionID] {
			kept = append(kept, s)
		}
	}
	t.sessions = kept
	return nil
}

func (t *memTx) InsertRescheduleLog(row *sessModel.ClassSessionRescheduleLogModel) error {
	t.logs = append(t.logs, *row)
	return nil
}
