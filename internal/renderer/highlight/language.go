package highlight

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-enry/go-enry/v2"
)

// Registry maps language names and file extensions to rule tables.
type Registry struct {
	mu sync.RWMutex

	// byLanguage maps language names to tables
	byLanguage map[string]*RuleTable

	// byExtension maps file extensions (with leading dot) to tables
	byExtension map[string]*RuleTable

	// aliases maps detected language names onto registered ones
	aliases map[string]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byLanguage:  make(map[string]*RuleTable),
		byExtension: make(map[string]*RuleTable),
		aliases:     make(map[string]string),
	}
}

// Register adds a table under its language name and the given extensions.
func (r *Registry) Register(t *RuleTable, extensions ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byLanguage[t.Language()] = t
	for _, ext := range extensions {
		r.byExtension[normalizeExt(ext)] = t
	}
}

// Alias makes name resolve to the table registered as language.
func (r *Registry) Alias(name, language string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[strings.ToLower(name)] = language
}

// ByLanguage returns the table for a language name or alias.
func (r *Registry) ByLanguage(language string) (*RuleTable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byLanguageLocked(strings.ToLower(language))
}

func (r *Registry) byLanguageLocked(language string) (*RuleTable, bool) {
	if t, ok := r.byLanguage[language]; ok {
		return t, true
	}
	if target, ok := r.aliases[language]; ok {
		t, ok := r.byLanguage[target]
		return t, ok
	}
	return nil, false
}

// ByExtension returns the table for a file extension.
func (r *Registry) ByExtension(ext string) (*RuleTable, bool) {
	if ext == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byExtension[normalizeExt(ext)]
	return t, ok
}

// Detect picks a table for a file. The extension is tried first; failing
// that, go-enry classifies the file by name and content.
func (r *Registry) Detect(filename string, content []byte) (*RuleTable, bool) {
	if t, ok := r.ByExtension(filepath.Ext(filename)); ok {
		return t, true
	}

	lang := enry.GetLanguage(filepath.Base(filename), content)
	if lang == "" {
		return nil, false
	}
	return r.ByLanguage(lang)
}

// Languages returns all registered language names, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.byLanguage))
	for lang := range r.byLanguage {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// DefaultRegistry returns a registry with the built-in tables.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(CppRules(), ".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".hh")
	r.Register(GoRules(), ".go")
	r.Register(JavaScriptRules(), ".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx")

	// go-enry language names
	r.Alias("c", "cpp")
	r.Alias("c++", "cpp")
	r.Alias("objective-c", "cpp")
	r.Alias("typescript", "javascript")
	r.Alias("tsx", "javascript")
	return r
}
