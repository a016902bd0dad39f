package entity

import (
	"fmt"
	"time"

	"github.com/poboll/tictactoe-arm/internal/apperror"
)

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"
	StatusAborted  = "aborted"
)

const (
	ModeSelfFirst     = "self-first"
	ModeOpponentFirst = "opponent-first"
)

type Session struct {
	ID            string    `json:"id"`
	Board         Board     `json:"board"`
	Mover         string    `json:"mover,omitempty"`
	SelfMoves     int       `json:"self_moves"`
	OpponentMoves int       `json:"opponent_moves"`
	Status        string    `json:"status"`
	Result        string    `json:"result,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}

func NewSession(id, mode string) *Session {
	mover := MarkOpponent
	if mode == ModeSelfFirst {
		mover = MarkSelf
	}

	return &Session{
		ID:        id,
		Board:     EmptyBoard(),
		Mover:     mover,
		Status:    StatusOngoing,
		StartedAt: time.Now(),
	}
}

// ApplyMove places a mark on the board and bumps that side's move count.
// Terminal evaluation and turn flipping happen in Advance.
func (that *Session) ApplyMove(mark string, cell int) error {
	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !that.IsOngoing() {
		return apperror.ErrSessionFinished
	}

	if that.Mover != mark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = mark

	if mark == MarkSelf {
		that.SelfMoves++
	} else {
		that.OpponentMoves++
	}

	return nil
}

// Advance evaluates the board after an applied move: it either finishes the
// session or hands the turn to the other side.
func (that *Session) Advance() {
	if result := that.Board.Result(); result != ResultNone {
		that.Result = result
		that.Status = StatusFinished
		that.Mover = ""
		that.FinishedAt = time.Now()
		return
	}

	if that.Mover == MarkSelf {
		that.Mover = MarkOpponent
	} else {
		that.Mover = MarkSelf
	}
}

// Abort ends the session without a result, keeping the board as-is.
func (that *Session) Abort() {
	if !that.IsOngoing() {
		return
	}

	that.Status = StatusAborted
	that.Mover = ""
	that.FinishedAt = time.Now()
}

func (that *Session) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}
