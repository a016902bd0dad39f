package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poboll/tictactoe-arm/internal/apperror"
)

func TestNewSession(t *testing.T) {
	t.Run("Opponent first", func(t *testing.T) {
		// When: create a session in opponent-first mode
		session := NewSession("000", ModeOpponentFirst)

		// Then: the opponent is the first mover on an empty board
		require.NotNil(t, session)
		assert.Equal(t, MarkOpponent, session.Mover)
		assert.Equal(t, EmptyBoard(), session.Board)
		assert.Equal(t, StatusOngoing, session.Status)
	})

	t.Run("Self first", func(t *testing.T) {
		session := NewSession("000", ModeSelfFirst)

		assert.Equal(t, MarkSelf, session.Mover)
	})
}

func TestSession_ApplyMove(t *testing.T) {
	t.Run("ApplyMove", func(t *testing.T) {
		// Given: a fresh opponent-first session
		session := NewSession("000", ModeOpponentFirst)

		// When: the opponent places a piece
		err := session.ApplyMove(MarkOpponent, 4)

		// Then: the board holds the mark and the count is bumped, turn unchanged until Advance
		require.NoError(t, err)
		assert.Equal(t, MarkOpponent, session.Board[4])
		assert.Equal(t, 1, session.OpponentMoves)
		assert.Equal(t, MarkOpponent, session.Mover)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: a session with the center taken
		session := NewSession("000", ModeOpponentFirst)
		require.NoError(t, session.ApplyMove(MarkOpponent, 4))
		session.Advance()

		// When: self tries the same cell
		err := session.ApplyMove(MarkSelf, 4)

		// Then: an ErrCellOccupied error should be returned
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: an opponent-first session
		session := NewSession("000", ModeOpponentFirst)

		// When: self moves before the opponent
		err := session.ApplyMove(MarkSelf, 0)

		// Then: an ErrNotYourTurn error should be returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Invalid cell", func(t *testing.T) {
		session := NewSession("000", ModeOpponentFirst)

		err := session.ApplyMove(MarkOpponent, 9)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Invalid negative cell", func(t *testing.T) {
		session := NewSession("000", ModeOpponentFirst)

		err := session.ApplyMove(MarkOpponent, -1)

		assert.ErrorIs(t, err, apperror.ErrInvalidCell)
	})

	t.Run("Move after session finished", func(t *testing.T) {
		// Given: a finished session
		session := NewSession("000", ModeSelfFirst)
		session.Board = Board{MarkSelf, MarkSelf, MarkSelf, MarkOpponent, MarkOpponent, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
		session.Advance()

		// When: any side tries to move
		err := session.ApplyMove(MarkOpponent, 5)

		// Then: an ErrSessionFinished error should be returned
		assert.ErrorIs(t, err, apperror.ErrSessionFinished)
	})
}

func TestSession_Advance(t *testing.T) {
	t.Run("Flips mover while in progress", func(t *testing.T) {
		// Given: an opponent-first session after one opponent move
		session := NewSession("000", ModeOpponentFirst)
		require.NoError(t, session.ApplyMove(MarkOpponent, 0))

		// When: the cycle is accepted
		session.Advance()

		// Then: it is self's turn and the session remains ongoing
		assert.Equal(t, MarkSelf, session.Mover)
		assert.True(t, session.IsOngoing())
	})

	t.Run("Finishes on win", func(t *testing.T) {
		// Given: a board where self just completed a row
		session := NewSession("000", ModeSelfFirst)
		session.Board = Board{MarkSelf, MarkSelf, MarkSelf, MarkOpponent, MarkOpponent, EmptyCell, EmptyCell, EmptyCell, EmptyCell}

		// When: the cycle is accepted
		session.Advance()

		// Then: the session is terminal with a self win and no mover
		assert.True(t, session.IsFinished())
		assert.Equal(t, ResultSelfWin, session.Result)
		assert.Empty(t, session.Mover)
		assert.False(t, session.FinishedAt.IsZero())
	})

	t.Run("Finishes on draw", func(t *testing.T) {
		session := NewSession("000", ModeSelfFirst)
		session.Board = Board{
			MarkSelf, MarkOpponent, MarkSelf,
			MarkSelf, MarkOpponent, MarkOpponent,
			MarkOpponent, MarkSelf, MarkSelf,
		}

		session.Advance()

		assert.Equal(t, ResultDraw, session.Result)
		assert.True(t, session.IsFinished())
	})
}

func TestSession_Abort(t *testing.T) {
	// Given: an ongoing session
	session := NewSession("000", ModeOpponentFirst)

	// When: the session is aborted
	session.Abort()

	// Then: the session is closed without a result
	assert.Equal(t, StatusAborted, session.Status)
	assert.Empty(t, session.Result)

	// When: a finished session is aborted
	finished := NewSession("001", ModeSelfFirst)
	finished.Board = Board{MarkSelf, MarkSelf, MarkSelf, MarkOpponent, MarkOpponent, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
	finished.Advance()
	finished.Abort()

	// Then: the terminal result is preserved
	assert.Equal(t, StatusFinished, finished.Status)
	assert.Equal(t, ResultSelfWin, finished.Result)
}
