package vision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poboll/tictactoe-arm/internal/entity"
)

func TestRotate(t *testing.T) {
	// Given: a board with distinct cell values
	board := entity.Board{"0", "1", "2", "3", "4", "5", "6", "7", "8"}

	t.Run("No rotation", func(t *testing.T) {
		assert.Equal(t, board, Rotate(board, 0))
	})

	t.Run("One quarter turn", func(t *testing.T) {
		// When: undoing one clockwise quarter turn of the mount
		rotated := Rotate(board, 1)

		// Then: the camera's right column becomes the canonical top row
		assert.Equal(t, entity.Board{"2", "5", "8", "1", "4", "7", "0", "3", "6"}, rotated)
	})

	t.Run("Two quarter turns", func(t *testing.T) {
		// Then: a half turn reverses the board
		assert.Equal(t, entity.Board{"8", "7", "6", "5", "4", "3", "2", "1", "0"}, Rotate(board, 2))
	})

	t.Run("Full turn is identity", func(t *testing.T) {
		assert.Equal(t, board, Rotate(board, 4))
	})

	t.Run("Negative turns wrap", func(t *testing.T) {
		assert.Equal(t, Rotate(board, 3), Rotate(board, -1))
	})
}
