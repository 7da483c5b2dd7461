// Package reconcile maps client-originated sync requests onto durable
// server records. The client works offline against local ids; this engine
// decides create vs update vs delete from the parsed request kind and hands
// back the stable (server_id, local_id) pairing the client needs to link
// its bookkeeping.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ashacare-backend/internal/compat"
	"ashacare-backend/internal/models"
	"ashacare-backend/internal/store"
)

// Outcome of a reconciliation.
type Outcome string

const (
	OutcomeCreated Outcome = "created"
	OutcomeUpdated Outcome = "updated"
	OutcomeDeleted Outcome = "deleted"
)

// Result pairs the authoritative server id with the client's local id.
// LocalID is only populated on create; it is never used as a lookup key.
type Result struct {
	ServerID uint
	LocalID  string
	Outcome  Outcome
}

// Engine executes reconciliation requests against the record store. It is
// stateless; each call is an independent unit of work bounded by timeout.
type Engine struct {
	store   *store.Store
	timeout time.Duration
	log     *zap.Logger
}

func NewEngine(st *store.Store, timeout time.Duration, log *zap.Logger) *Engine {
	return &Engine{store: st, timeout: timeout, log: log}
}

func (e *Engine) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, e.timeout)
}

// Reconcile dispatches a parsed patient request. Resending a create yields
// a second record (no natural-key dedup); resending an update is
// idempotent. That asymmetry is the sync contract.
func (e *Engine) Reconcile(ctx context.Context, req compat.PatientRequest) (*Result, error) {
	ctx, cancel := e.bounded(ctx)
	defer cancel()

	switch r := req.(type) {
	case compat.CreatePatient:
		return e.createPatient(ctx, r)
	case compat.UpdatePatient:
		return e.updatePatient(ctx, r)
	case compat.DeletePatient:
		return e.deletePatient(ctx, r)
	default:
		return nil, fmt.Errorf("unhandled request kind %T", req)
	}
}

func (e *Engine) createPatient(ctx context.Context, req compat.CreatePatient) (*Result, error) {
	rec := req.Record
	rec.SyncStatus = models.SyncStatusSynced
	if err := e.store.CreatePatient(ctx, &rec); err != nil {
		return nil, &StoreError{Op: "create patient", Err: err}
	}
	e.log.Info("patient created",
		zap.Uint("server_id", rec.ID),
		zap.String("local_id", req.LocalID),
		zap.Uint("asha_id", rec.AshaID))
	return &Result{ServerID: rec.ID, LocalID: req.LocalID, Outcome: OutcomeCreated}, nil
}

func (e *Engine) updatePatient(ctx context.Context, req compat.UpdatePatient) (*Result, error) {
	rec := req.Record
	rec.ID = req.ServerID
	rec.SyncStatus = models.SyncStatusSynced
	rows, err := e.store.ReplacePatient(ctx, &rec)
	if err != nil {
		return nil, &StoreError{Op: "update patient", Err: err}
	}
	if rows == 0 {
		return nil, &NotFoundError{Entity: "patient", ID: req.ServerID}
	}
	e.log.Info("patient updated", zap.Uint("server_id", req.ServerID))
	return &Result{ServerID: req.ServerID, Outcome: OutcomeUpdated}, nil
}

func (e *Engine) deletePatient(ctx context.Context, req compat.DeletePatient) (*Result, error) {
	rows, err := e.store.DeletePatient(ctx, req.ServerID)
	if err != nil {
		return nil, &StoreError{Op: "delete patient", Err: err}
	}
	if rows == 0 {
		return nil, &NotFoundError{Entity: "patient", ID: req.ServerID}
	}
	e.log.Info("patient deleted", zap.Uint("server_id", req.ServerID))
	return &Result{ServerID: req.ServerID, Outcome: OutcomeDeleted}, nil
}
