package imports

import (
	stderrors "errors"
	"strings"

	"github.com/arthur-debert/tmplfs/pkg/errors"
	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Import is one top-level import statement with a string source.
type Import struct {
	// Source is the unescaped string literal, e.g. "@preview/pkg:1.0.0".
	Source string
	// Offset is the byte offset of the leading '#'.
	Offset int
}

// IsPackage reports whether the source names a package rather than a file.
func (i Import) IsPackage() bool {
	return strings.HasPrefix(i.Source, "@")
}

// Line returns the 1-based line of the import within text.
func (i Import) Line(text string) int {
	return strings.Count(text[:i.Offset], "\n") + 1
}

// Scan returns the top-level imports of a markup file in source order.
func Scan(text string) []Import {
	s := &scanner{src: text}
	s.markup(false)
	return s.imports
}

// PackageSpecs returns the package imports of text that parse as package
// specs, in source order. Invalid package sources are returned as errors
// carrying the line of the import.
func PackageSpecs(text string) ([]types.PackageSpec, []error) {
	var specs []types.PackageSpec
	var errs []error
	for _, imp := range Scan(text) {
		if !imp.IsPackage() {
			continue
		}
		spec, err := types.ParsePackageSpec(imp.Source)
		if err != nil {
			var coded *errors.TmplfsError
			if stderrors.As(err, &coded) {
				coded.WithDetail(errors.DetailLine, imp.Line(text))
			}
			errs = append(errs, err)
			continue
		}
		specs = append(specs, spec)
	}
	return specs, errs
}

var statementKeywords = map[string]bool{
	"let":      true,
	"set":      true,
	"show":     true,
	"if":       true,
	"for":      true,
	"while":    true,
	"import":   true,
	"include":  true,
	"context":  true,
	"return":   true,
	"break":    true,
	"continue": true,
}

type scanner struct {
	src     string
	pos     int
	imports []Import
}

func (s *scanner) peek(off int) byte {
	if s.pos+off < len(s.src) {
		return s.src[s.pos+off]
	}
	return 0
}

func (s *scanner) startsWith(prefix string) bool {
	return strings.HasPrefix(s.src[s.pos:], prefix)
}

// markup scans markup. Nested markup (a content block) ends at its closing
// bracket, which is consumed; only top-level markup records imports.
func (s *scanner) markup(nested bool) {
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '\\':
			s.pos += 2
		case s.startsWith("//") && (s.pos == 0 || s.src[s.pos-1] != ':'):
			s.lineComment()
		case s.startsWith("/*"):
			s.blockComment()
		case c == '`':
			s.raw()
		case c == '#':
			s.embedded(!nested)
		case nested && c == '[':
			depth++
			s.pos++
		case nested && c == ']':
			s.pos++
			if depth == 0 {
				return
			}
			depth--
		default:
			s.pos++
		}
	}
}

// embedded handles a '#' in markup.
func (s *scanner) embedded(record bool) {
	start := s.pos
	s.pos++

	switch s.peek(0) {
	case '{', '(':
		s.code(false)
		return
	case '[':
		s.pos++
		s.markup(true)
		return
	}

	ident := s.ident()
	switch {
	case ident == "":
		// a literal '#'
	case ident == "import":
		s.importStatement(start, record)
	case statementKeywords[ident]:
		s.code(true)
	default:
		s.postfix()
	}
}

// importStatement records `import "<source>"` and skips the rest of it.
func (s *scanner) importStatement(start int, record bool) {
	for s.peek(0) == ' ' || s.peek(0) == '\t' {
		s.pos++
	}
	if s.peek(0) == '"' {
		source := s.str()
		if record {
			s.imports = append(s.imports, Import{Source: source, Offset: start})
		}
	}
	s.code(true)
}

// postfix skips calls, content arguments and field accesses after an
// embedded identifier: #foo.bar(x)[body].
func (s *scanner) postfix() {
	for {
		switch s.peek(0) {
		case '(':
			s.code(false)
		case '[':
			s.pos++
			s.markup(true)
		case '.':
			if !isIdentStart(s.peek(1)) {
				return
			}
			s.pos++
			s.ident()
		default:
			return
		}
	}
}

// code skips code. As a statement it ends at a newline or ';' outside of
// brackets; otherwise s is at an opening bracket and code ends after the
// matching closer.
func (s *scanner) code(statement bool) {
	depth := 0
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case statement && depth == 0 && (c == '\n' || c == ';'):
			return
		case c == '"':
			s.str()
		case s.startsWith("//"):
			s.lineComment()
		case s.startsWith("/*"):
			s.blockComment()
		case c == '`':
			s.raw()
		case c == '[':
			s.pos++
			s.markup(true)
		case c == ']':
			// ends the content block this code is embedded in
			return
		case c == '(' || c == '{':
			depth++
			s.pos++
		case c == ')' || c == '}':
			if depth == 0 {
				// closes an enclosing block we do not own
				return
			}
			depth--
			s.pos++
			if !statement && depth == 0 {
				return
			}
		default:
			s.pos++
		}
	}
}

// str consumes a string literal and returns its unescaped value.
func (s *scanner) str() string {
	var b strings.Builder
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch c {
		case '"':
			s.pos++
			return b.String()
		case '\\':
			switch next := s.peek(1); next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 0:
			default:
				b.WriteByte(next)
			}
			s.pos += 2
		default:
			b.WriteByte(c)
			s.pos++
		}
	}
	return b.String()
}

func (s *scanner) ident() string {
	start := s.pos
	if !isIdentStart(s.peek(0)) {
		return ""
	}
	for s.pos < len(s.src) && isIdentContinue(s.src[s.pos]) {
		s.pos++
	}
	return s.src[start:s.pos]
}

func (s *scanner) lineComment() {
	if i := strings.IndexByte(s.src[s.pos:], '\n'); i >= 0 {
		s.pos += i
		return
	}
	s.pos = len(s.src)
}

// blockComment skips a possibly nested /* */ comment.
func (s *scanner) blockComment() {
	depth := 0
	for s.pos < len(s.src) {
		switch {
		case s.startsWith("/*"):
			depth++
			s.pos += 2
		case s.startsWith("*/"):
			depth--
			s.pos += 2
			if depth == 0 {
				return
			}
		default:
			s.pos++
		}
	}
}

// raw skips a raw span or block delimited by equal runs of backticks.
func (s *scanner) raw() {
	n := 0
	for s.peek(n) == '`' {
		n++
	}
	if n == 2 {
		s.pos += 2
		return
	}
	fence := strings.Repeat("`", n)
	s.pos += n
	if i := strings.Index(s.src[s.pos:], fence); i >= 0 {
		s.pos += i + n
		return
	}
	s.pos = len(s.src)
}

// ASCII identifiers are enough to recognize keywords and skip calls; other
// bytes end an identifier and are then skipped as text.
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool {
	return isIdentStart(c) || c == '-' || (c >= '0' && c <= '9')
}
