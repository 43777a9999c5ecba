// concurrency/semaphore.go
package concurrency

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TryAcquire admits the caller if no other request is pending. It never blocks.
// On success it returns a context carrying the request ID under RequestIDKey; the caller
// must pass the ID to Release once the exchange has completed.
func (g *RequestGate) TryAcquire(ctx context.Context) (context.Context, uuid.UUID, error) {
	requestID := uuid.New()

	if !g.sem.TryAcquire(1) {
		g.Metrics.Lock.Lock()
		g.Metrics.Rejected++
		g.Metrics.Lock.Unlock()

		g.lock.Lock()
		pending := g.holder
		g.lock.Unlock()

		g.logger.Warn("Rejected request while another is pending",
			zap.String("RequestID", requestID.String()),
			zap.String("PendingRequestID", pending.String()),
		)
		return ctx, uuid.Nil, ErrRequestPending
	}

	g.lock.Lock()
	g.holder = requestID
	g.since = time.Now()
	g.lock.Unlock()

	g.Metrics.Lock.Lock()
	g.Metrics.Accepted++
	g.Metrics.Lock.Unlock()

	g.logger.Debug("Acquired request gate", zap.String("RequestID", requestID.String()))

	return context.WithValue(ctx, RequestIDKey{}, requestID), requestID, nil
}

// Release frees the gate held by requestID. Releasing with an ID that does not hold the gate is logged and ignored.
func (g *RequestGate) Release(requestID uuid.UUID) {
	g.lock.Lock()
	if requestID == uuid.Nil || requestID != g.holder {
		holder := g.holder
		g.lock.Unlock()
		g.logger.Warn("Ignoring release from a request that does not hold the gate",
			zap.String("RequestID", requestID.String()),
			zap.String("HolderRequestID", holder.String()),
		)
		return
	}
	held := time.Since(g.since)
	g.holder = uuid.Nil
	g.since = time.Time{}
	g.lock.Unlock()

	g.sem.Release(1)

	g.Metrics.Lock.Lock()
	g.Metrics.Released++
	g.Metrics.TotalHoldTime += held
	g.Metrics.Lock.Unlock()

	g.logger.Debug("Released request gate", zap.String("RequestID", requestID.String()), zap.Duration("HoldTime", held))
}

// Pending reports whether a request currently holds the gate.
func (g *RequestGate) Pending() bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.holder != uuid.Nil
}

// RequestIDFromContext returns the request ID stored by TryAcquire, or uuid.Nil.
func RequestIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(RequestIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
