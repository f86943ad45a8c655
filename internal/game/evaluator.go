package game

// WinCombos lists the winning triples: rows, then columns, then diagonals.
// Evaluate checks them in this order and the first match wins.
var WinCombos = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Evaluate determines the outcome of a board. It is pure: the same board always yields the same outcome.
func Evaluate(board Board) Outcome {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		if player, ok := a.Owner(); ok {
			return Win(player, combo)
		}
	}

	// the game will continue until all the squares are full
	if !board.IsFull() {
		return InProgress()
	}

	return Tie()
}
