package app

import "github.com/rivo/uniseg"

// cluster is one grapheme cluster of a line placed on display columns.
type cluster struct {
	start, end int // byte range within the line
	col        int // first display column
	width      int // display cells, at least 1
	text       string
}

// layoutLine places each grapheme cluster of s on display columns.
// Tabs advance to the next multiple of tabWidth.
func layoutLine(s string, tabWidth int) []cluster {
	if tabWidth <= 0 {
		tabWidth = 1
	}

	var out []cluster
	offset, col := 0, 0
	state := -1
	for len(s) > 0 {
		c, rest, boundaries, newState := uniseg.StepString(s, state)
		width := boundaries >> uniseg.ShiftWidth
		if c == "\t" {
			width = tabWidth - col%tabWidth
		}
		if width < 1 {
			width = 1
		}
		out = append(out, cluster{start: offset, end: offset + len(c), col: col, width: width, text: c})
		offset += len(c)
		col += width
		s = rest
		state = newState
	}
	return out
}

// lineWidth returns the display width of a laid out line.
func lineWidth(cs []cluster) int {
	if len(cs) == 0 {
		return 0
	}
	last := cs[len(cs)-1]
	return last.col + last.width
}

// displayColumn returns the display column of byte offset b.
// Offsets inside a cluster map to the cluster's column.
func displayColumn(cs []cluster, b int) int {
	for _, c := range cs {
		if b < c.end {
			return c.col
		}
	}
	return lineWidth(cs)
}

// byteColumn returns the byte offset of the cluster at display column col,
// or the line length past the end.
func byteColumn(cs []cluster, col int) int {
	for _, c := range cs {
		if col < c.col+c.width {
			return c.start
		}
	}
	if len(cs) == 0 {
		return 0
	}
	return cs[len(cs)-1].end
}

// prevBoundary returns the start of the cluster before byte offset b.
func prevBoundary(cs []cluster, b int) int {
	prev := 0
	for _, c := range cs {
		if c.start >= b {
			break
		}
		prev = c.start
	}
	return prev
}

// nextBoundary returns the end of the cluster at byte offset b.
func nextBoundary(cs []cluster, b int) int {
	for _, c := range cs {
		if b < c.end {
			return c.end
		}
	}
	if len(cs) == 0 {
		return 0
	}
	return cs[len(cs)-1].end
}
