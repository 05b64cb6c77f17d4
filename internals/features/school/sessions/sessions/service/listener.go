// file: internals/features/school/sessions/sessions/service/listener.go
package service

import (
	"context"
	"log"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventGenerated EventKind = "generated"
	EventCancelled EventKind = "cancelled"
	EventPurged    EventKind = "purged"
)

// SessionEvent dikirim setelah commit; dipakai misalnya untuk sinkron kalender.
type SessionEvent struct {
	Kind    EventKind
	ClassID uuid.UUID
	Created []uuid.UUID
	Updated []uuid.UUID
	Deleted []uuid.UUID
}

type SessionListener interface {
	SessionsChanged(ctx context.Context, ev SessionEvent)
}

// LogListener cuma mencatat event ke log.
type LogListener struct{}

func (LogListener) SessionsChanged(_ context.Context, ev SessionEvent) {
	log.Printf("[LessonSession.Listener] kind=%s class=%s created=%d updated=%d deleted=%d",
		ev.Kind, ev.ClassID, len(ev.Created), len(ev.Updated), len(ev.Deleted))
}

// fire-and-forget; panic di listener tidak boleh menjatuhkan request.
func notify(ctx context.Context, l SessionListener, ev SessionEvent) {
	if l == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[LessonSession.Listener] panic recovered: %v", r)
			}
		}()
		l.SessionsChanged(context.WithoutCancel(ctx), ev)
	}()
}
