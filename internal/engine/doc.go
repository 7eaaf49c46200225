// Package engine combines a document, a bracket matcher and the transient
// highlight set behind one API.
//
// Hosts deliver edits through ApplyEdit (or Insert, Delete, SetText) and
// cursor moves through MoveCursor. Every edit re-annotates the affected
// lines, and every cursor move or edit recomputes the highlight set: the
// current line plus the matched bracket pair, if any.
//
// # Thread Safety
//
// Engine operations are serialized by a mutex. Reads that trigger lazy
// annotation mutate the document, so they take the same lock as writes.
//
// # Basic Usage
//
//	e := engine.New(
//		engine.WithContent("if (a(b)) {}"),
//		engine.WithRules(highlight.CppRules()),
//	)
//	e.MoveCursor(engine.Point{Line: 0, Column: 8})
//	pair, ok := e.Match()
package engine
