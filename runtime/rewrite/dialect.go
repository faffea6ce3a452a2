package rewrite

import (
	"regexp"
	"strings"
)

// Dialect locates class-attribute values in one host syntax. Pattern must
// have exactly one capture group holding the class string; Render rebuilds
// the full match around a replacement value.
type Dialect struct {
	Name    string
	Pattern *regexp.Regexp
	Render  func(value string) string
}

// Built-in dialect names
const (
	DialectClassName = "className"
	DialectTw        = "tw"
	DialectClass     = "class"
)

// Built-in dialects, in the order they are applied.
var builtinDialects = []Dialect{
	{
		// JSX/TSX: className="..."
		Name:    DialectClassName,
		Pattern: regexp.MustCompile(`(?s)className\s*=\s*"(.*?)"`),
		Render:  func(v string) string { return `className="` + v + `"` },
	},
	{
		// twin.macro template literals: tw`...`
		Name:    DialectTw,
		Pattern: regexp.MustCompile("tw`([^`]+)`"),
		Render:  func(v string) string { return "tw`" + v + "`" },
	},
	{
		// HTML, Vue, Blade: class="..."
		Name:    DialectClass,
		Pattern: regexp.MustCompile(`(?s)class\s*=\s*"(.*?)"`),
		Render:  func(v string) string { return `class="` + v + `"` },
	},
}

// DialectNames returns the built-in dialect names in application order.
func DialectNames() []string {
	names := make([]string, len(builtinDialects))
	for i, d := range builtinDialects {
		names[i] = d.Name
	}
	return names
}

// LookupDialect returns the built-in dialect called name.
func LookupDialect(name string) (Dialect, bool) {
	for _, d := range builtinDialects {
		if d.Name == name {
			return d, true
		}
	}
	return Dialect{}, false
}

// DefaultExtensions lists the file suffixes rewritten by default.
func DefaultExtensions() []string {
	return []string{".jsx", ".tsx", ".js", ".ts", ".vue", ".php", ".blade.php"}
}

// needsExpansion reports whether value uses grouping at all. Values without
// a '(' are left untouched and never reach the expander.
func needsExpansion(value string) bool {
	return strings.Contains(value, "(")
}
