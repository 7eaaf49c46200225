package loader

import (
	"testing"
)

func fakeEnv(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	loader := NewEnvLoader("LINEMARK_")
	loader.lookup = fakeEnv(
		"LINEMARK_LOG_LEVEL=debug",
		"LINEMARK_THEME=dark",
		"LINEMARK_BRACKET_ADJACENCY=either",
		"LINEMARK_CURRENT_LINE=off",
		"HOME=/root",
	)

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"logging.level", "debug"},
		{"highlight.theme", "dark"},
		{"brackets.adjacency", "either"},
		{"editor.currentLine", false},
	}
	for _, tt := range tests {
		if val, ok := getByPath(config, tt.path); !ok || val != tt.want {
			t.Errorf("%s = %v, want %v", tt.path, val, tt.want)
		}
	}
	if _, ok := config["home"]; ok {
		t.Error("unprefixed variable leaked into config")
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	loader := NewEnvLoader("LINEMARK_")
	loader.lookup = fakeEnv("LINEMARK_HIGHLIGHT_COMMENT_START=(*", "LINEMARK_X=1")

	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if val, ok := getByPath(config, "highlight.commentStart"); !ok || val != "(*" {
		t.Errorf("highlight.commentStart = %v, want '(*'", val)
	}
	if len(config) != 1 {
		t.Errorf("config = %v, single-part names should be skipped", config)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	loader := NewEnvLoader("LINEMARK_")

	tests := []struct {
		env  string
		want string
	}{
		{"LINEMARK_EDITOR_CURRENT_LINE", "editor.currentLine"},
		{"LINEMARK_HIGHLIGHT_THEME", "highlight.theme"},
		{"LINEMARK_BRACKETS_ADJACENCY", "brackets.adjacency"},
		{"LINEMARK_SOLO", ""},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := loader.envToPath(tt.env); got != tt.want {
				t.Errorf("envToPath(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		want  any
	}{
		{"true", true},
		{"On", true},
		{"no", false},
		{"42", int64(42)},
		{"after", "after"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseValue(tt.input); got != tt.want {
				t.Errorf("parseValue(%q) = %v (%T), want %v", tt.input, got, got, tt.want)
			}
		})
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	loader := NewEnvLoaderWithMapping("LM_", nil)
	loader.AddMapping("LM_STYLE", "highlight.theme")
	loader.lookup = fakeEnv("LM_STYLE=dark")

	config, _ := loader.Load()
	if val, _ := getByPath(config, "highlight.theme"); val != "dark" {
		t.Errorf("highlight.theme = %v, want dark", val)
	}
}

func getByPath(data map[string]any, path string) (any, bool) {
	var current any = data
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[path[start:i]]
		if !ok {
			return nil, false
		}
		start = i + 1
	}
	return current, true
}
