package files

import (
	"unicode/utf8"

	"github.com/arthur-debert/tmplfs/pkg/types"
)

// Source is an immutable decoded text file.
//
// When a cached file changes on disk, the store derives the new Source from
// the previous one with Replace instead of building a fresh value. The
// successor keeps the lineage (same id, increasing revision) and records the
// edited range so a compiler can reparse incrementally.
type Source struct {
	id       types.FileID
	text     string
	revision int
	edit     *Edit
}

// Edit describes how a Source differs from its predecessor: the bytes
// [Start, End) of the old text were replaced by Replacement.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// NewSource creates the first revision of a source file.
func NewSource(id types.FileID, text string) *Source {
	return &Source{id: id, text: text}
}

// ID returns the file id the source was read from.
func (s *Source) ID() types.FileID { return s.id }

// Text returns the full text.
func (s *Source) Text() string { return s.text }

// Len returns the length of the text in bytes.
func (s *Source) Len() int { return len(s.text) }

// Revision counts how many edits separate s from the first read.
func (s *Source) Revision() int { return s.revision }

// LastEdit returns the edit that produced s, if s is not a first revision.
func (s *Source) LastEdit() (Edit, bool) {
	if s.edit == nil {
		return Edit{}, false
	}
	return *s.edit, true
}

// Replace returns the successor of s holding text. Only the changed middle
// section is recorded as the edit. Replacing with identical text returns s.
func (s *Source) Replace(text string) *Source {
	if text == s.text {
		return s
	}

	old := s.text
	prefix := 0
	for prefix < len(old) && prefix < len(text) && old[prefix] == text[prefix] {
		prefix++
	}
	for prefix > 0 && prefix < len(old) && !utf8.RuneStart(old[prefix]) {
		prefix--
	}

	suffix := 0
	for suffix < len(old)-prefix && suffix < len(text)-prefix &&
		old[len(old)-1-suffix] == text[len(text)-1-suffix] {
		suffix++
	}
	for suffix > 0 && !utf8.RuneStart(old[len(old)-suffix]) {
		suffix--
	}

	return &Source{
		id:       s.id,
		text:     text,
		revision: s.revision + 1,
		edit: &Edit{
			Start:       prefix,
			End:         len(old) - suffix,
			Replacement: text[prefix : len(text)-suffix],
		},
	}
}
