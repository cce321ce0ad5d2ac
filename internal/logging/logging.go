package logging

import (
	"context"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
)

// ContextKey defines the context key type.
type ContextKey string

// ContextIDKey holds the key of the context ID.
const ContextIDKey ContextKey = "ctx_id"

// WithContextID returns a copy of the context holding the given ID.
func WithContextID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, ContextIDKey, id)
}

// ContextID returns the context ID, uuid.Nil when not set.
func ContextID(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ContextIDKey).(uuid.UUID)
	return id
}

// WithContext returns a log entry with the ctx_id field set.
func WithContext(ctx context.Context) *log.Entry {
	return log.WithField(string(ContextIDKey), ContextID(ctx))
}
