// file: internals/features/school/sessions/sessions/service/syllabus.go
package service

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	sylModel "schoolops_backend/internals/features/school/syllabus/model"
)

// Syllabus = kurikulum berurutan milik satu kelas (read-only dari sisi engine).
type Syllabus struct {
	ID            uuid.UUID
	TotalSessions int
	Units         []sylModel.SyllabusUnitModel
}

// NewSyllabus merapikan urutan unit; validasi dilakukan terpisah lewat Validate.
func NewSyllabus(s sylModel.SyllabusModel, units []sylModel.SyllabusUnitModel) Syllabus {
	out := make([]sylModel.SyllabusUnitModel, len(units))
	copy(out, units)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SyllabusUnitSequenceNumber < out[j].SyllabusUnitSequenceNumber
	})
	return Syllabus{ID: s.SyllabusID, TotalSessions: s.SyllabusTotalSessions, Units: out}
}

// Validate: total == jumlah unit dan nomor urut persis 1..N.
func (s Syllabus) Validate() error {
	if s.TotalSessions <= 0 {
		return fmt.Errorf("%w: total_sessions must be positive, got %d", ErrInvalidSyllabus, s.TotalSessions)
	}
	if len(s.Units) != s.TotalSessions {
		return fmt.Errorf("%w: total_sessions=%d but %d units", ErrInvalidSyllabus, s.TotalSessions, len(s.Units))
	}
	for i, u := range s.Units {
		if u.SyllabusUnitSequenceNumber != i+1 {
			return fmt.Errorf("%w: unit #%d has sequence number %d", ErrInvalidSyllabus, i+1, u.SyllabusUnitSequenceNumber)
		}
	}
	return nil
}

// Unit mengembalikan unit dengan nomor urut n (1-based).
func (s Syllabus) Unit(n int) (sylModel.SyllabusUnitModel, bool) {
	if n < 1 || n > len(s.Units) || s.Units[n-1].SyllabusUnitSequenceNumber != n {
		for _, u := range s.Units {
			if u.SyllabusUnitSequenceNumber == n {
				return u, true
			}
		}
		return sylModel.SyllabusUnitModel{}, false
	}
	return s.Units[n-1], true
}
