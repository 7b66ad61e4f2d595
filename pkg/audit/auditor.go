package audit

import (
	"context"

	"go.uber.org/zap"
)

// Auditor writes events to the audit log and, when a store is attached,
// persists them. A nil or disabled Auditor drops events.
type Auditor struct {
	logger  *Logger
	store   *Store
	log     *zap.Logger
	enabled bool
}

// NewAuditor creates an Auditor. store may be nil.
func NewAuditor(logger *Logger, store *Store, log *zap.Logger, enabled bool) *Auditor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auditor{
		logger:  logger,
		store:   store,
		log:     log,
		enabled: enabled,
	}
}

// Enabled reports whether events are recorded
func (a *Auditor) Enabled() bool {
	return a != nil && a.enabled
}

// Record logs an event and persists it if a store is attached.
// Persistence failures are logged, never returned: the audited request has
// already succeeded.
func (a *Auditor) Record(ctx context.Context, event Event) {
	if !a.Enabled() {
		return
	}
	if a.logger != nil {
		a.logger.Log(event)
	}
	if a.store == nil {
		return
	}
	if err := a.store.Save(ctx, event); err != nil {
		a.log.Warn("failed to persist audit event",
			zap.String("msgid", event.MessageID()),
			zap.Error(err),
		)
	}
}

// Close releases the store connection
func (a *Auditor) Close() error {
	if a == nil || a.store == nil {
		return nil
	}
	return a.store.Close()
}
