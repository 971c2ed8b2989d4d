package game

// CheckBingo reports whether the grid holds a win: a fully checked row, a
// fully checked column, or, when the grid is square, a fully checked
// diagonal. Diagonals are skipped entirely on rectangular grids because they
// do not physically exist there. Degenerate grids never win.
func CheckBingo(cells []Cell, rows, cols int) bool {
	return WinningLine(cells, rows, cols) != nil
}

// WinningLine returns the row-major cell indexes of the first complete line,
// or nil when the card has no bingo. Every row and every column is examined
// before concluding nil.
func WinningLine(cells []Cell, rows, cols int) []int {
	if rows == 0 || cols == 0 {
		return nil
	}

	checkLine := func(line []int) bool {
		for _, idx := range line {
			if !cells[idx].Checked {
				return false
			}
		}
		return true
	}

	for r := 0; r < rows; r++ {
		line := make([]int, cols)
		for c := 0; c < cols; c++ {
			line[c] = r*cols + c
		}
		if checkLine(line) {
			return line
		}
	}

	for c := 0; c < cols; c++ {
		line := make([]int, rows)
		for r := 0; r < rows; r++ {
			line[r] = r*cols + c
		}
		if checkLine(line) {
			return line
		}
	}

	// Diagonals only exist on square grids.
	if rows != cols {
		return nil
	}

	diag := make([]int, rows)
	anti := make([]int, rows)
	for i := 0; i < rows; i++ {
		diag[i] = i*cols + i
		anti[i] = i*cols + (cols - 1 - i)
	}
	if checkLine(diag) {
		return diag
	}
	if checkLine(anti) {
		return anti
	}

	return nil
}
