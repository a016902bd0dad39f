package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poboll/tictactoe-arm/internal/entity"
)

func TestDecide_EmptyBoardTieBreak(t *testing.T) {
	// Given: an empty board, self to move
	// When: the engine decides
	decision := Decide(entity.EmptyBoard(), entity.MarkSelf)

	// Then: every opening scores a draw, so the lowest index wins the tie
	require.False(t, decision.Terminal)
	assert.Equal(t, 0, decision.Cell)
}

func TestDecide_TakesImmediateWin(t *testing.T) {
	// Given: self has two in the top row with cell 2 open
	board := entity.Board{
		entity.MarkSelf, entity.MarkSelf, entity.EmptyCell,
		entity.MarkOpponent, entity.MarkOpponent, entity.EmptyCell,
		entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
	}

	// When: the engine decides for self
	decision := Decide(board, entity.MarkSelf)

	// Then: it completes the row
	require.False(t, decision.Terminal)
	assert.Equal(t, 2, decision.Cell)
}

func TestDecide_BlocksOpponentWin(t *testing.T) {
	// Given: the opponent threatens the middle row at cell 5
	board := entity.Board{
		entity.MarkSelf, entity.EmptyCell, entity.EmptyCell,
		entity.MarkOpponent, entity.MarkOpponent, entity.EmptyCell,
		entity.MarkSelf, entity.EmptyCell, entity.EmptyCell,
	}

	// When: the engine decides for self
	decision := Decide(board, entity.MarkSelf)

	// Then: it blocks the threat
	require.False(t, decision.Terminal)
	assert.Equal(t, 5, decision.Cell)
}

func TestDecide_TerminalBoard(t *testing.T) {
	t.Run("Won board", func(t *testing.T) {
		// Given: a board self already won
		board := entity.Board{
			entity.MarkSelf, entity.MarkSelf, entity.MarkSelf,
			entity.MarkOpponent, entity.MarkOpponent, entity.EmptyCell,
			entity.EmptyCell, entity.EmptyCell, entity.EmptyCell,
		}

		// When: the engine is consulted
		decision := Decide(board, entity.MarkOpponent)

		// Then: it reports the terminal result without searching
		require.True(t, decision.Terminal)
		assert.Equal(t, entity.ResultSelfWin, decision.Result)
	})

	t.Run("Drawn board", func(t *testing.T) {
		board := entity.Board{
			entity.MarkSelf, entity.MarkOpponent, entity.MarkSelf,
			entity.MarkSelf, entity.MarkOpponent, entity.MarkOpponent,
			entity.MarkOpponent, entity.MarkSelf, entity.MarkSelf,
		}

		decision := Decide(board, entity.MarkSelf)

		require.True(t, decision.Terminal)
		assert.Equal(t, entity.ResultDraw, decision.Result)
	})
}

func TestDecide_NeverPicksOccupiedCell(t *testing.T) {
	// Given: an engine-vs-engine game from the empty board
	board := entity.EmptyBoard()
	mover := entity.MarkSelf

	// When: both sides play out the whole game
	for {
		decision := Decide(board, mover)
		if decision.Terminal {
			break
		}

		// Then: every chosen cell is empty
		require.Equal(t, entity.EmptyCell, board[decision.Cell])

		board = board.WithCell(decision.Cell, mover)
		if mover == entity.MarkSelf {
			mover = entity.MarkOpponent
		} else {
			mover = entity.MarkSelf
		}
	}
}

func TestDecide_OptimalSelfPlayIsDraw(t *testing.T) {
	// Given: both sides playing optimally from the empty board, either side first
	for _, first := range []string{entity.MarkSelf, entity.MarkOpponent} {
		board := entity.EmptyBoard()
		mover := first

		// When: the game is played to the end
		var decision Decision
		for {
			decision = Decide(board, mover)
			if decision.Terminal {
				break
			}

			board = board.WithCell(decision.Cell, mover)
			if mover == entity.MarkSelf {
				mover = entity.MarkOpponent
			} else {
				mover = entity.MarkSelf
			}
		}

		// Then: the result is a forced draw
		assert.Equal(t, entity.ResultDraw, decision.Result, "first mover %s", first)
	}
}

func TestDecide_NeverLosesToAnyOpponent(t *testing.T) {
	// Given: self responding optimally while the opponent tries every reply
	// for the first two plies
	for opening := 0; opening < 9; opening++ {
		board := entity.EmptyBoard().WithCell(opening, entity.MarkOpponent)

		selfDecision := Decide(board, entity.MarkSelf)
		require.False(t, selfDecision.Terminal)
		board = board.WithCell(selfDecision.Cell, entity.MarkSelf)

		for reply := 0; reply < 9; reply++ {
			if board[reply] != entity.EmptyCell {
				continue
			}

			// When: the rest of the game is self optimal vs opponent optimal
			game := board.WithCell(reply, entity.MarkOpponent)
			mover := entity.MarkSelf

			var decision Decision
			for {
				decision = Decide(game, mover)
				if decision.Terminal {
					break
				}

				game = game.WithCell(decision.Cell, mover)
				if mover == entity.MarkSelf {
					mover = entity.MarkOpponent
				} else {
					mover = entity.MarkSelf
				}
			}

			// Then: self never ends up losing
			assert.NotEqual(t, entity.ResultOpponentWin, decision.Result,
				"opening %d reply %d", opening, reply)
		}
	}
}
