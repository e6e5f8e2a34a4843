package term

import "github.com/mattn/go-runewidth"

// DisplayColumn returns the screen column of character col in line, with
// tabs expanded to the next multiple of tabWidth and wide characters
// counted as two cells.
func DisplayColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	x := 0
	i := 0
	for _, r := range line {
		if i >= col {
			break
		}
		x += cellWidth(r, x, tabWidth)
		i++
	}
	return x
}

// cellWidth is the number of cells r takes when drawn at column x.
func cellWidth(r rune, x, tabWidth int) int {
	if r == '\t' {
		return tabWidth - x%tabWidth
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		return 1
	}
	return w
}

// scroll returns the first visible line so that line stays inside a
// window of rows lines starting at top.
func scroll(top, line, rows int) int {
	if rows <= 0 {
		return line
	}
	if line < top {
		return line
	}
	if line >= top+rows {
		return line - rows + 1
	}
	return top
}
