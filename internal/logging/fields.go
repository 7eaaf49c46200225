package logging

// Field names for structured logging.
const (
	FieldError = "error"
	FieldPath  = "path"

	FieldSession   = "session"
	FieldLanguage  = "language"
	FieldTheme     = "theme"
	FieldRules     = "rules"
	FieldAdjacency = "adjacency"

	FieldLine        = "line"
	FieldColumn      = "column"
	FieldLines       = "lines"
	FieldEdited      = "edited"
	FieldReannotated = "reannotated"
	FieldOpen        = "open"
	FieldClose       = "close"

	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
