package highlight

// LineResult is everything an annotation pass derives from one line.
type LineResult struct {
	// Block is the line's replacement annotation.
	Block BlockAnnotation

	// Spans are the style spans of the line, sorted and non-overlapping.
	Spans []StyleSpan
}

// ExitState returns the comment state the next line is entered with.
func (r LineResult) ExitState() CommentState {
	return r.Block.ExitState()
}

// Annotator applies a RuleTable to single lines.
// Each call is independent, so one Annotator may serve any number of
// documents.
type Annotator struct {
	table *RuleTable
}

// NewAnnotator creates an annotator for the given table.
func NewAnnotator(table *RuleTable) *Annotator {
	return &Annotator{table: table}
}

// Table returns the rule table in use.
func (a *Annotator) Table() *RuleTable {
	return a.table
}

// Annotate scans one line. entry is the exit state of the previous line
// (CommentNormal for the first line).
func (a *Annotator) Annotate(text string, entry CommentState) LineResult {
	markers := ScanBrackets(text)

	if text == "" {
		// An empty line cannot open or close a comment; it carries the state through.
		exit := CommentNormal
		if a.table.hasComment {
			exit = entry
		}
		return LineResult{Block: NewBlockAnnotation(markers, exit)}
	}

	// One tag per byte: later writes overwrite earlier ones, which gives
	// last-rule-wins on overlap.
	tags := make([]TokenType, len(text))

	for _, rule := range a.table.rules {
		for _, m := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[0], m[1]
			if rule.Submatch > 0 {
				start, end = m[rule.Submatch*2], m[rule.Submatch*2+1]
			}
			if start < 0 || end <= start {
				continue
			}
			fill(tags, start, end, rule.Type)
		}
	}

	exit := CommentNormal
	if a.table.hasComment {
		var regions []commentRegion
		regions, exit = scanBlockComments(text, entry, a.table.comment)
		for _, r := range regions {
			fill(tags, r.start, r.end, a.table.commentStyle)
		}
	}

	return LineResult{
		Block: NewBlockAnnotation(markers, exit),
		Spans: collapse(tags),
	}
}

func fill(tags []TokenType, start, end int, t TokenType) {
	for i := start; i < end; i++ {
		tags[i] = t
	}
}

// collapse turns per-byte tags into runs, dropping untagged bytes.
func collapse(tags []TokenType) []StyleSpan {
	var spans []StyleSpan
	for i := 0; i < len(tags); {
		j := i + 1
		for j < len(tags) && tags[j] == tags[i] {
			j++
		}
		if tags[i] != TokenNone {
			spans = append(spans, StyleSpan{Start: i, Length: j - i, Type: tags[i]})
		}
		i = j
	}
	return spans
}
