package entity

const (
	EmptyCell    = ""
	MarkSelf     = "S"
	MarkOpponent = "H"
)

const (
	ResultNone        = ""
	ResultSelfWin     = "self"
	ResultOpponentWin = "opponent"
	ResultDraw        = "draw"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a full read of the 3x3 grid, indexed 0-8 in row-major order.
type Board [9]string

func EmptyBoard() Board {
	return Board{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell}
}

// Winner returns the mark holding three in a row, or an empty string.
func (that Board) Winner() string {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// Result maps the board to a terminal result, or ResultNone while play continues.
func (that Board) Result() string {
	switch that.Winner() {
	case MarkSelf:
		return ResultSelfWin
	case MarkOpponent:
		return ResultOpponentWin
	}

	if that.IsFull() {
		return ResultDraw
	}

	return ResultNone
}

func (that Board) Occupied() int {
	count := 0
	for _, cell := range that {
		if cell != EmptyCell {
			count++
		}
	}

	return count
}

// Diff returns the indices where the two boards disagree, in ascending order.
func (that Board) Diff(other Board) []int {
	var changed []int
	for i := range that {
		if that[i] != other[i] {
			changed = append(changed, i)
		}
	}

	return changed
}

// WithCell returns a copy of the board with the given cell set.
func (that Board) WithCell(cell int, mark string) Board {
	that[cell] = mark
	return that
}
