package entity

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

// BoardSize - number of cells on a 3x3 board.
const BoardSize = 9

type Board [BoardSize]Mark

type WinPattern [3]int

// WinPatterns - scanned in this order: rows, columns, diagonals.
var WinPatterns = [8]WinPattern{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Result int

const (
	InProgress Result = iota
	Win
	Tie
)

func (that Result) String() string {
	switch that {
	case Win:
		return "win"
	case Tie:
		return "tie"
	default:
		return "in_progress"
	}
}

// Outcome is derived from a board and never stored on its own.
type Outcome struct {
	Result  Result
	Winner  Mark
	Pattern WinPattern
}

func (that Outcome) IsTerminal() bool {
	return that.Result != InProgress
}

// IsValid reports whether the mark may be placed on the board.
func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}
