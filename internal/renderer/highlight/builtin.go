package highlight

// CppRules returns the C/C++ table: keywords (including the JavaScript
// declarations let, const and function), Q-prefixed class names, quoted
// strings, call-site identifiers and // comments, in that order, with
// /* */ block comments applied last.
func CppRules() *RuleTable {
	return NewBuilder("cpp").
		Keywords(TokenKeyword,
			"char", "class", "const", "double", "enum", "explicit",
			"friend", "inline", "int", "long", "namespace", "operator",
			"private", "protected", "public", "short", "signals", "signed",
			"slots", "static", "struct", "template", "typedef", "typename",
			"union", "unsigned", "virtual", "void", "volatile", "bool",
			"let", "function").
		Rule(`\bQ[A-Za-z]+\b`, TokenTypeClass).
		Rule(`".*"`, TokenString).
		Submatch(`\b([A-Za-z0-9_]+)\(`, 1, TokenFunctionCall).
		Rule(`//.*`, TokenCommentLine).
		BlockComment("/*", "*/").
		MustBuild()
}

// GoRules returns the Go table.
func GoRules() *RuleTable {
	return NewBuilder("go").
		Keywords(TokenKeyword,
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if", "import",
			"interface", "map", "package", "range", "return", "select",
			"struct", "switch", "type", "var").
		Keywords(TokenTypeClass,
			"bool", "byte", "complex64", "complex128", "error", "float32",
			"float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr", "any").
		Rule(`\b\d+(?:\.\d+)?\b`, TokenNumber).
		Submatch(`\b([A-Za-z0-9_]+)\(`, 1, TokenFunctionCall).
		Rule(`"(?:[^"\\]|\\.)*"`, TokenString).
		Rule("`[^`]*`", TokenString).
		Rule(`//.*`, TokenCommentLine).
		BlockComment("/*", "*/").
		MustBuild()
}

// JavaScriptRules returns the JavaScript/TypeScript table.
func JavaScriptRules() *RuleTable {
	return NewBuilder("javascript").
		Keywords(TokenKeyword,
			"async", "await", "break", "case", "catch", "class", "const",
			"continue", "default", "delete", "do", "else", "export", "extends",
			"finally", "for", "function", "if", "import", "in", "instanceof",
			"let", "new", "of", "return", "switch", "this", "throw", "try",
			"typeof", "var", "while", "yield").
		Rule(`\b\d+(?:\.\d+)?\b`, TokenNumber).
		Rule(`@\w+`, TokenMeta).
		Submatch(`\b([A-Za-z0-9_$]+)\(`, 1, TokenFunctionCall).
		Rule(`"(?:[^"\\]|\\.)*"`, TokenString).
		Rule(`'(?:[^'\\]|\\.)*'`, TokenString).
		Rule(`//.*`, TokenCommentLine).
		BlockComment("/*", "*/").
		MustBuild()
}
