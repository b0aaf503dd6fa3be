package ini

import (
	"strings"

	"github.com/dzjyyds666/iq/pkg/ordered"
)

// Sections is an ordered table of named key tables. Section lookup ignores
// ASCII case; the case of the first header seen is kept for display.
type Sections struct {
	*ordered.Map[string, *Keys]
}

// NewSections returns an empty table.
func NewSections() *Sections {
	return &Sections{Map: ordered.NewFold[*Keys]()}
}

// Section returns the section called name, appending an empty one if it
// does not exist yet.
func (s *Sections) Section(name string) *Keys {
	p, _ := s.Map.Insert(name, nil)
	k := s.Value(p)
	if *k == nil {
		*k = NewKeys()
	}
	return *k
}

// Insert appends a section unless one called name exists. A nil table is
// stored as an empty one.
func (s *Sections) Insert(name string, k *Keys) (ordered.Pos, bool) {
	return s.InsertHint(ordered.End, name, k)
}

// InsertHint is Insert placing a new section before hint.
func (s *Sections) InsertHint(hint ordered.Pos, name string, k *Keys) (ordered.Pos, bool) {
	if k == nil {
		k = NewKeys()
	}
	return s.Map.InsertHint(hint, name, k)
}

// Lookup returns the value stored under key in section.
func (s *Sections) Lookup(section, key string) (Value, bool) {
	k, ok := s.Get(section)
	if !ok || k == nil {
		return Value{}, false
	}
	return k.Get(key)
}

// Rename gives the section at pos a new name without moving it. It returns
// the position of the renamed section, or End if pos is invalid or a section
// called newName already exists. Positions to the section taken before the
// call are no longer valid.
func (s *Sections) Rename(pos ordered.Pos, newName string) ordered.Pos {
	if !s.Valid(pos) || s.Contains(newName) {
		return ordered.End
	}
	k := *s.Value(pos)
	next := s.Erase(pos)
	it, _ := s.Insert(newName, k)
	s.MoveBefore(it, next)
	return it
}

// RenameSection is Rename for the section called name.
func (s *Sections) RenameSection(name, newName string) ordered.Pos {
	return s.Rename(s.Find(name), newName)
}

// Format serializes every section as its comment, its `[name]` header, its
// entries and a blank line.
func (s *Sections) Format(comments bool) string {
	var b strings.Builder
	for name, k := range s.All() {
		if k == nil {
			k = NewKeys()
		}
		if comments {
			b.WriteString(FormatComment(k.Comment))
		}
		b.WriteByte('[')
		b.WriteString(Escape(name))
		b.WriteString("]\n")
		k.format(&b, comments)
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *Sections) String() string {
	return s.Format(true)
}

func (s *Sections) clone() *Sections {
	c := NewSections()
	for name, k := range s.All() {
		c.Insert(name, k.clone())
	}
	return c
}
