// Package rewrite finds grouped class strings in source files and replaces
// them with their expansion.
//
// Each dialect is a pattern over the raw file text (className="...",
// tw`...`, class="..."). Dialects run one after another over the whole
// source. Only values containing '(' are expanded; everything else is copied
// through byte for byte.
package rewrite

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aledsdavies/twgroup"
	"github.com/aledsdavies/twgroup/core/errors"
)

// Option configures a Rewriter
type Option func(*settings)

type settings struct {
	dialects   []string
	extensions []string
	strict     bool
	logger     *slog.Logger
	expand     func(string) (string, error)
}

// WithDialects restricts rewriting to the named dialects. Order of
// application stays the built-in order regardless of argument order.
func WithDialects(names ...string) Option {
	return func(s *settings) {
		s.dialects = names
	}
}

// WithExtensions replaces the set of file suffixes Supports accepts.
func WithExtensions(exts ...string) Option {
	return func(s *settings) {
		s.extensions = exts
	}
}

// WithStrict makes the first failing candidate abort the whole rewrite.
// Without it a failing candidate keeps its original text and is reported.
func WithStrict(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

// WithLogger routes per-candidate debug tracing to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithExpander swaps the expansion function. The default is twgroup.Expand.
func WithExpander(expand func(string) (string, error)) Option {
	return func(s *settings) {
		s.expand = expand
	}
}

// Rewriter applies a fixed set of dialects. It holds no per-call state and is
// safe for concurrent use.
type Rewriter struct {
	dialects   []Dialect
	extensions []string
	strict     bool
	logger     *slog.Logger
	expand     func(string) (string, error)
}

// New builds a Rewriter. It fails if a dialect name is unknown.
func New(opts ...Option) (*Rewriter, error) {
	s := &settings{
		dialects:   DialectNames(),
		extensions: DefaultExtensions(),
		expand:     twgroup.Expand,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	enabled := make(map[string]bool, len(s.dialects))
	for _, name := range s.dialects {
		if _, ok := LookupDialect(name); !ok {
			return nil, errors.NewConfigError(fmt.Sprintf("unknown dialect %q", name), nil).
				WithContext("dialect", name)
		}
		enabled[name] = true
	}

	r := &Rewriter{
		extensions: s.extensions,
		strict:     s.strict,
		logger:     s.logger,
		expand:     s.expand,
	}
	for _, d := range builtinDialects {
		if enabled[d.Name] {
			r.dialects = append(r.dialects, d)
		}
	}
	return r, nil
}

// Supports reports whether path ends in one of the configured extensions.
func (r *Rewriter) Supports(path string) bool {
	for _, ext := range r.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// Report summarises one rewrite.
type Report struct {
	Candidates int       // attribute values matched by any dialect
	Expanded   int       // values that contained a group and expanded cleanly
	Failures   []Failure // values left as-is because expansion failed
}

// Failure records a candidate whose expansion failed.
type Failure struct {
	Dialect string
	Line    int // 1-based line of the match in the text seen by that dialect pass
	Value   string
	Err     error
}

func (f Failure) Error() string {
	return fmt.Sprintf("line %d (%s): %q: %v", f.Line, f.Dialect, f.Value, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Rewrite returns src with every grouped class value expanded. In strict mode
// the first failure is returned as the error together with the partial
// report, and the output is empty.
func (r *Rewriter) Rewrite(src string) (string, *Report, error) {
	report := &Report{}
	out := src
	for _, d := range r.dialects {
		next, err := r.apply(d, out, report)
		if err != nil {
			return "", report, err
		}
		out = next
	}
	return out, report, nil
}

func (r *Rewriter) apply(d Dialect, src string, report *Report) (string, error) {
	matches := d.Pattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	var b strings.Builder
	b.Grow(len(src))
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		value := src[m[2]:m[3]]
		report.Candidates++

		b.WriteString(src[last:start])
		last = end

		if !needsExpansion(value) {
			b.WriteString(src[start:end])
			continue
		}

		expanded, err := r.expand(value)
		if err != nil {
			f := Failure{
				Dialect: d.Name,
				Line:    strings.Count(src[:start], "\n") + 1,
				Value:   value,
				Err:     err,
			}
			if r.strict {
				report.Failures = append(report.Failures, f)
				return "", f
			}
			r.logger.Warn("leaving class value unexpanded", "dialect", d.Name, "line", f.Line, "error", err)
			report.Failures = append(report.Failures, f)
			b.WriteString(src[start:end])
			continue
		}

		r.logger.Debug("expanded", "dialect", d.Name, "from", value, "to", expanded)
		report.Expanded++
		b.WriteString(d.Render(expanded))
	}
	b.WriteString(src[last:])
	return b.String(), nil
}

// FileResult is the outcome of rewriting one file on disk.
type FileResult struct {
	Path     string
	Original string
	Output   string
	Report   *Report
}

// Changed reports whether the rewrite altered the file contents.
func (f *FileResult) Changed() bool {
	return f.Original != f.Output
}

// RewriteFile reads path and rewrites its contents. It does not write back.
func (r *Rewriter) RewriteFile(path string) (*FileResult, error) {
	if !r.Supports(path) {
		return nil, errors.New(errors.ErrUnsupportedFile, fmt.Sprintf("%s: extension not in %v", path, r.extensions)).
			WithContext("path", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to read %s", path), err)
	}

	out, report, err := r.Rewrite(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return &FileResult{Path: path, Original: string(data), Output: out, Report: report}, nil
}
