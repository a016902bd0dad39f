package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poboll/tictactoe-arm/internal/apperror"
	"github.com/poboll/tictactoe-arm/internal/engine"
	"github.com/poboll/tictactoe-arm/internal/entity"
	"github.com/poboll/tictactoe-arm/internal/protocol"
	"github.com/poboll/tictactoe-arm/internal/reconcile"
)

const (
	stateAwaitingMove       = "awaiting-move"
	stateAwaitingAcceptance = "awaiting-acceptance"
	stateAnomalyRecovery    = "anomaly-recovery"
	stateTerminal           = "terminal"
)

const (
	defaultStabilityWindow = 3
	defaultPollInterval    = 200 * time.Millisecond
	defaultSnapshotWait    = 30 * time.Second
)

// Source delivers the latest raw board reading from the vision collaborator.
type Source interface {
	Snapshot(ctx context.Context) (entity.Board, error)
}

// FrameWriter pushes an encoded frame down the arm link.
type FrameWriter interface {
	WriteFrame(frame protocol.Frame) error
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
}

type archiveRepo interface {
	Save(ctx context.Context, session *entity.Session) error
}

type Options struct {
	Mode            string
	SelfColor       string
	OpeningCell     int
	StabilityWindow int
	PollInterval    time.Duration
	DecisionTimeout time.Duration
}

// Controller owns the session state across the whole game and drives the
// per-turn loop: snapshot intake, reconciliation, decision, frame emission.
// Everything runs on the caller's goroutine; other components only ever see
// board values passed by copy.
type Controller struct {
	logger   *slog.Logger
	source   Source
	writer   FrameWriter
	sessions sessionRepo
	archive  archiveRepo

	session  *entity.Session
	state    string
	anomaly  *entity.Anomaly
	moveType byte

	openingCell     int
	stabilityWindow int
	pollInterval    time.Duration
	decisionTimeout time.Duration

	window []entity.Board
}

func New(logger *slog.Logger, source Source, writer FrameWriter, sessions sessionRepo, archive archiveRepo, id string, opts Options) *Controller {
	moveType := entity.CommandBlackMove
	if opts.SelfColor == "white" {
		moveType = entity.CommandWhiteMove
	}

	if opts.StabilityWindow < 1 {
		opts.StabilityWindow = defaultStabilityWindow
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}

	if opts.DecisionTimeout <= 0 {
		opts.DecisionTimeout = defaultSnapshotWait
	}

	return &Controller{
		logger:   logger.With("component", "session"),
		source:   source,
		writer:   writer,
		sessions: sessions,
		archive:  archive,

		session:  entity.NewSession(id, opts.Mode),
		state:    stateAwaitingMove,
		moveType: moveType,

		openingCell:     opts.OpeningCell,
		stabilityWindow: opts.StabilityWindow,
		pollInterval:    opts.PollInterval,
		decisionTimeout: opts.DecisionTimeout,
	}
}

// Run plays the session to completion and returns the final record. An
// expired context aborts the session cleanly between cycles.
func (that *Controller) Run(ctx context.Context) (*entity.Session, error) {
	that.logger.Info("session started", "id", that.session.ID, "mover", that.session.Mover)

	for {
		select {
		case <-ctx.Done():
			that.session.Abort()
			that.logger.Info("session aborted", "id", that.session.ID)
			return that.session, nil
		default:
		}

		switch that.state {
		case stateAwaitingMove:
			if err := that.awaitMove(ctx); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					continue
				}
				return that.session, err
			}
		case stateAwaitingAcceptance:
			that.acceptMove(ctx)
		case stateAnomalyRecovery:
			that.recoverAnomaly()
		case stateTerminal:
			that.archiveSession(ctx)
			that.logger.Info("session finished", "id", that.session.ID, "result", that.session.Result)
			return that.session, nil
		}
	}
}

func (that *Controller) awaitMove(ctx context.Context) error {
	if that.session.Mover == entity.MarkSelf {
		return that.playSelf()
	}

	return that.observeOpponent(ctx)
}

// playSelf needs no sensor input: the move is decided here, applied, and
// sent to the arm as a move command carrying this side's move ordinal.
func (that *Controller) playSelf() error {
	cell := -1
	if that.session.SelfMoves == 0 && that.openingCell >= 0 && that.session.Board[that.openingCell] == entity.EmptyCell {
		cell = that.openingCell
	}

	if cell < 0 {
		decision := engine.Decide(that.session.Board, entity.MarkSelf)
		if decision.Terminal {
			that.state = stateAwaitingAcceptance
			return nil
		}
		cell = decision.Cell
	}

	if err := that.session.ApplyMove(entity.MarkSelf, cell); err != nil {
		return fmt.Errorf("failed to apply own move: %w", err)
	}

	cmd := entity.Command{Type: that.moveType, Origin: that.session.SelfMoves, Target: cell}
	if err := that.writer.WriteFrame(protocol.Encode(cmd)); err != nil {
		return fmt.Errorf("failed to send move command: %w", err)
	}

	that.logger.Info("played own move", "cell", cell, "ordinal", that.session.SelfMoves)
	that.state = stateAwaitingAcceptance

	return nil
}

func (that *Controller) observeOpponent(ctx context.Context) error {
	raw, ok, err := that.stableSnapshot(ctx)
	if err != nil {
		return err
	}

	if !ok {
		// The human may simply be slow; keep waiting.
		that.logger.Debug("no stable snapshot within wait window, re-polling")
		return nil
	}

	outcome := reconcile.Reconcile(that.session.Board, raw, entity.MarkOpponent)

	switch outcome.Kind {
	case reconcile.OutcomeUnchanged:
		return nil
	case reconcile.OutcomeAccepted:
		if err = that.session.ApplyMove(entity.MarkOpponent, outcome.Cell); err != nil {
			return fmt.Errorf("failed to apply opponent move: %w", err)
		}
		that.logger.Info("accepted opponent move", "cell", outcome.Cell)
		that.state = stateAwaitingAcceptance
	case reconcile.OutcomeAnomaly:
		that.anomaly = outcome.Anomaly
		that.state = stateAnomalyRecovery
	}

	return nil
}

// acceptMove finishes the cycle for an applied move: terminal check, turn
// flip, and persistence of the live record. A storage failure must not stop
// the physical game, so it is only logged.
func (that *Controller) acceptMove(ctx context.Context) {
	that.session.Advance()

	if err := that.sessions.CreateOrUpdate(ctx, that.session); err != nil {
		that.logger.Error("failed to persist session", "error", err)
	}

	if that.session.IsFinished() {
		that.state = stateTerminal
		return
	}

	that.state = stateAwaitingMove
}

// recoverAnomaly alerts the operator and holds the board: the same side must
// correct the physical position before play resumes, so the mover does not
// flip.
func (that *Controller) recoverAnomaly() {
	report := that.anomaly
	that.anomaly = nil

	cmd := entity.Command{Type: entity.CommandRetraction, Origin: report.Origin, Target: report.Target}
	if err := that.writer.WriteFrame(protocol.Encode(cmd)); err != nil {
		that.logger.Error("failed to send retraction alert", "error", err)
	}

	that.logger.Warn("board anomaly detected",
		"kind", report.Kind,
		"origin", report.Origin,
		"target", report.Target,
		"changed", report.Changed,
	)

	that.state = stateAwaitingMove
}

// stableSnapshot polls the source until the same raw board has been seen for
// stabilityWindow consecutive ticks, guarding against single-frame detector
// flicker. ok is false when the wait window expires without a stable read.
func (that *Controller) stableSnapshot(ctx context.Context) (entity.Board, bool, error) {
	deadline := time.NewTimer(that.decisionTimeout)
	defer deadline.Stop()

	ticker := time.NewTicker(that.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return entity.Board{}, false, ctx.Err()
		case <-deadline.C:
			return entity.Board{}, false, nil
		case <-ticker.C:
			raw, err := that.source.Snapshot(ctx)
			if err != nil {
				if !errors.Is(err, apperror.ErrNoSnapshot) {
					that.logger.Warn("snapshot read failed", "error", err)
				}
				continue
			}

			if that.observe(raw) {
				that.window = that.window[:0]
				return raw, true, nil
			}
		}
	}
}

// observe appends raw to the observation window and reports whether the
// window holds stabilityWindow identical reads. Any change restarts the
// window; a candidate that reverts to the accepted board before stabilizing
// is noted as detector flicker.
func (that *Controller) observe(raw entity.Board) bool {
	if n := len(that.window); n > 0 && that.window[n-1] != raw {
		if that.window[n-1] != that.session.Board && raw == that.session.Board {
			that.logger.Debug("snapshot flicker discarded", "kind", entity.AnomalyNoise)
		}
		that.window = that.window[:0]
	}

	that.window = append(that.window, raw)
	if len(that.window) > that.stabilityWindow {
		that.window = that.window[1:]
	}

	return len(that.window) >= that.stabilityWindow
}

func (that *Controller) archiveSession(ctx context.Context) {
	if err := that.archive.Save(ctx, that.session); err != nil {
		that.logger.Error("failed to archive session", "error", err)
	}
}
