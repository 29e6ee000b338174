package actuator

import (
	"context"

	"cooling_dashboard/internal/logger"
	"cooling_dashboard/internal/models"
)

// Remote is the device-state resource as seen by Sync.
type Remote interface {
	Fetch(ctx context.Context) (models.ActuatorDesiredState, error)
	Push(ctx context.Context, st models.ActuatorDesiredState) (models.ActuatorDesiredState, error)
}

// Operations reported in Result.
const (
	OpReconcile = "reconcile"
	OpCommit    = "commit"
)

// Result describes one finished remote round-trip.
type Result struct {
	Op      string
	Seq     uint64
	Applied bool // false when the request failed or its answer was stale
	State   models.ActuatorDesiredState
	Err     error
}

// Sync orchestrates reconcile and commit against a Remote.
// Failures are returned, never retried; the next scheduled cycle retries.
type Sync struct {
	remote Remote
	store  *Store
	log    *logger.Logger
}

// NewSync wires a store to a remote resource.
func NewSync(r Remote, store *Store, log *logger.Logger) *Sync {
	if log == nil {
		log = logger.Nop()
	}
	return &Sync{remote: r, store: store, log: log}
}

// Store returns the underlying store.
func (s *Sync) Store() *Store { return s.store }

// Reconcile fetches the authoritative state and replaces the local copy.
// On failure the local state is left untouched.
func (s *Sync) Reconcile(ctx context.Context) Result {
	seq := s.store.BeginReconcile()
	st, err := s.remote.Fetch(ctx)
	if err != nil {
		s.log.Warnw("actuator_reconcile_failed", "seq", seq, "err", err)
		return Result{Op: OpReconcile, Seq: seq, Err: err}
	}
	applied := s.store.ApplyReconcile(seq, st)
	if !applied {
		s.log.Debugw("actuator_reconcile_stale", "seq", seq)
	}
	return Result{Op: OpReconcile, Seq: seq, Applied: applied, State: s.store.Confirmed()}
}

// Commit sends st, echoing it locally until the answer lands.
func (s *Sync) Commit(ctx context.Context, st models.ActuatorDesiredState) Result {
	seq := s.store.BeginCommit(st)
	got, err := s.remote.Push(ctx, Normalize(st))
	if err != nil {
		s.store.FailCommit(seq)
		s.log.Warnw("actuator_commit_failed", "seq", seq, "mode", st.ModeRequest, "err", err)
		return Result{Op: OpCommit, Seq: seq, Err: err}
	}
	applied := s.store.ApplyCommit(seq, got)
	if !applied {
		s.log.Debugw("actuator_commit_superseded", "seq", seq)
	}
	s.log.Infow("actuator_committed", "seq", seq, "mode", got.ModeRequest, "ac", bool(got.AC), "fan", bool(got.Fan))
	return Result{Op: OpCommit, Seq: seq, Applied: applied, State: s.store.Confirmed()}
}
