package highlight

import "strings"

// commentRegion is a block comment range within one line.
type commentRegion struct {
	start, end int
}

// scanBlockComments finds block comment regions in text given the state
// the line is entered with, and reports the state it is left in.
//
// In the inside state the line opens mid-comment, so the first region
// starts at 0 and runs to the first end token. Afterwards the scan looks
// for the next start token past the previous region and repeats until
// none remain. A start token without a following end token runs the
// region to the end of the line and leaves the line inside a comment.
func scanBlockComments(text string, entry CommentState, bc BlockComment) ([]commentRegion, CommentState) {
	var regions []commentRegion

	start := 0
	bodyFrom := 0
	if entry != CommentInside {
		start = strings.Index(text, bc.Start)
		bodyFrom = start + len(bc.Start)
	}

	for start >= 0 {
		endIdx := strings.Index(text[bodyFrom:], bc.End)
		if endIdx < 0 {
			regions = append(regions, commentRegion{start: start, end: len(text)})
			return regions, CommentInside
		}

		end := bodyFrom + endIdx + len(bc.End)
		regions = append(regions, commentRegion{start: start, end: end})

		next := strings.Index(text[end:], bc.Start)
		if next < 0 {
			break
		}
		start = end + next
		bodyFrom = start + len(bc.Start)
	}

	return regions, CommentNormal
}
