// file: internals/features/school/sessions/sessions/service/locker.go
package service

import (
	"sync"

	"github.com/google/uuid"
)

// classLocker = mutex per kelas di dalam proses. Lock DB (FOR UPDATE) tetap
// dipakai untuk antar-instance; ini hanya supaya request di proses yang sama antre.
type classLocker struct {
	mu sync.Mutex
	m  map[uuid.UUID]*classLock
}

type classLock struct {
	mu   sync.Mutex
	refs int
}

func newClassLocker() *classLocker {
	return &classLocker{m: make(map[uuid.UUID]*classLock)}
}

// Lock memblok sampai kelas bebas, lalu mengembalikan fungsi unlock.
func (l *classLocker) Lock(classID uuid.UUID) func() {
	l.mu.Lock()
	e, ok := l.m[classID]
	if !ok {
		e = &classLock{}
		l.m[classID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.m, classID)
		}
		l.mu.Unlock()
	}
}
