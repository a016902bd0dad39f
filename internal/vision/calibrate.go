package vision

import "github.com/poboll/tictactoe-arm/internal/entity"

// counterclockwise maps canonical indices to camera indices for a board
// photographed one quarter-turn clockwise: canonical cell i is found at
// camera cell counterclockwise[i].
var counterclockwise = [9]int{2, 5, 8, 1, 4, 7, 0, 3, 6}

// Rotate undoes the camera mount rotation: given a snapshot taken from a
// mount turned quarterTurns clockwise, it returns the board in canonical
// 0-8 numbering.
func Rotate(board entity.Board, quarterTurns int) entity.Board {
	turns := ((quarterTurns % 4) + 4) % 4

	for ; turns > 0; turns-- {
		var rotated entity.Board
		for i := range rotated {
			rotated[i] = board[counterclockwise[i]]
		}
		board = rotated
	}

	return board
}
