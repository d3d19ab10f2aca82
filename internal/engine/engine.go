package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/venegas/pedidos/internal/api"
	"github.com/venegas/pedidos/internal/types"
)

var (
	// ErrSessionExpired aborts a run before any network activity.
	ErrSessionExpired = errors.New("session expired")
	// ErrSyncRunning rejects a run started while another is in flight.
	ErrSyncRunning = errors.New("sync already running")
)

type Store interface {
	GetPendingOrders(ctx context.Context) ([]types.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status types.Status, errorMessage *string, serverID *string) error
}

type Uploader interface {
	CreateOrder(ctx context.Context, bearer string, order types.Order) (string, error)
}

type Session interface {
	IsActive() bool
	BearerToken() string
}

// Engine delivers pending orders to the backend one at a time. A run is
// always triggered explicitly; there is no polling and no automatic retry.
type Engine struct {
	store   Store
	client  Uploader
	session Session

	runMu sync.Mutex
}

// Report summarizes one sync run.
type Report struct {
	Success int
	Errors  int
}

func (r Report) Total() int {
	return r.Success + r.Errors
}

func NewEngine(store Store, client Uploader, session Session) *Engine {
	return &Engine{
		store:   store,
		client:  client,
		session: session,
	}
}

// Run snapshots the pending orders, checks the session, then walks the
// snapshot oldest-first uploading each order and recording its outcome.
// A per-order failure (including a 401) does not abort the run. An empty
// pending set returns a zero Report and no error.
//
// Cancelling ctx between orders stops the run: processed orders keep their
// terminal status, the rest stay PENDING, and the partial Report is returned
// together with the context error.
func (e *Engine) Run(ctx context.Context) (Report, error) {

	if !e.runMu.TryLock() {
		return Report{}, fmt.Errorf("%w", ErrSyncRunning)
	}
	defer e.runMu.Unlock()

	pending, err := e.store.GetPendingOrders(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("failed to collect pending orders: %w", err)
	}
	if len(pending) == 0 {
		logger.Info("No pending orders to sync")
		return Report{}, nil
	}

	if !e.session.IsActive() {
		return Report{}, fmt.Errorf("%w", ErrSessionExpired)
	}
	bearer := e.session.BearerToken()

	logger.Infof("Starting sync of %d order(s)", len(pending))

	var report Report
	for _, order := range pending {
		if ctx.Err() != nil {
			return report, ctx.Err()
		}

		serverID, err := e.client.CreateOrder(ctx, bearer, order)
		if err != nil {
			message := outcomeMessage(err)
			logger.Warningf("Order %d failed: %s", order.ID, message)
			e.recordOutcome(ctx, order.ID, types.ErrorStatus, &message, nil)
			report.Errors++
			continue
		}

		logger.Infof("Order %d synced, server id %s", order.ID, serverID)
		e.recordOutcome(ctx, order.ID, types.SyncedStatus, nil, &serverID)
		report.Success++
	}

	logger.Infof("Sync finished: %d ok, %d failed", report.Success, report.Errors)
	return report, nil
}

func (e *Engine) recordOutcome(ctx context.Context, id int64, status types.Status, errorMessage *string, serverID *string) {
	if err := e.store.UpdateOrderStatus(ctx, id, status, errorMessage, serverID); err != nil {
		logger.Errorf("Failed to record outcome for order %d: %s", id, err.Error())
	}
}

// outcomeMessage renders the stored per-order error. HTTP errors keep the
// status code, a rejected credential gets its own wording, anything else is
// treated as a connectivity failure.
func outcomeMessage(err error) string {
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code == http.StatusUnauthorized {
			return "Token inválido o expirado"
		}
		return fmt.Sprintf("HTTP %d", statusErr.Code)
	}
	return "Sin conexión: " + err.Error()
}
