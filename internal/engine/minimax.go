package engine

import (
	"fmt"

	"github.com/poboll/tictactoe-arm/internal/entity"
)

// Decision is either a chosen cell or a terminal result.
type Decision struct {
	Terminal bool
	Result   string
	Cell     int
}

// Decide picks the optimal cell for the mover by exhaustive minimax over the
// remaining empty cells. Among equally scored moves the lowest index wins,
// so the choice is deterministic. A board that is already terminal is
// returned as such without searching.
//
// A full non-terminal board cannot be produced by the upstream invariants;
// seeing one means a defect in this program, so it fails loudly.
func Decide(board entity.Board, mover string) Decision {
	if result := board.Result(); result != entity.ResultNone {
		return Decision{Terminal: true, Result: result}
	}

	bestCell := -1
	bestScore := 0

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		score := search(board.WithCell(i, mover), opponentOf(mover))

		if bestCell < 0 || better(mover, score, bestScore) {
			bestCell = i
			bestScore = score
		}
	}

	if bestCell < 0 {
		panic(fmt.Sprintf("engine: no legal move on non-terminal board %v", board))
	}

	return Decision{Cell: bestCell}
}

// search scores a position from Self's perspective: +1 a forced self win,
// -1 a forced opponent win, 0 a draw.
func search(board entity.Board, mover string) int {
	switch board.Winner() {
	case entity.MarkSelf:
		return 1
	case entity.MarkOpponent:
		return -1
	}

	if board.IsFull() {
		return 0
	}

	best := 0
	first := true

	for i := range board {
		if board[i] != entity.EmptyCell {
			continue
		}

		score := search(board.WithCell(i, mover), opponentOf(mover))

		if first || better(mover, score, best) {
			best = score
			first = false
		}
	}

	return best
}

// better reports whether score strictly beats best for the given mover:
// Self maximizes, Opponent minimizes.
func better(mover string, score, best int) bool {
	if mover == entity.MarkSelf {
		return score > best
	}

	return score < best
}

func opponentOf(mover string) string {
	if mover == entity.MarkSelf {
		return entity.MarkOpponent
	}

	return entity.MarkSelf
}
