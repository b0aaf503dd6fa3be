package ini

import (
	"strings"

	"github.com/dzjyyds666/iq/pkg/ordered"
)

// Keys is an ordered table of key/value entries. Key lookup ignores ASCII
// case; the case used at insertion is kept for display. Use NewKeys; the zero
// value has no map behind it.
type Keys struct {
	*ordered.Map[string, Value]

	// Comment annotates the table: the text above the section header, or the
	// document preamble of a flat document.
	Comment string
}

// NewKeys returns an empty table.
func NewKeys() *Keys {
	return &Keys{Map: ordered.NewFold[Value]()}
}

// Clear removes every entry and the table comment.
func (k *Keys) Clear() {
	k.Map.Clear()
	k.Comment = ""
}

// Set stores text under key. An existing entry keeps its position, display
// case and comment.
func (k *Keys) Set(key, text string) ordered.Pos {
	p, inserted := k.Insert(key, NewValue(text))
	if !inserted {
		k.Value(p).Text = text
	}
	return p
}

// Text returns the text stored under key, or "" if there is none.
func (k *Keys) Text(key string) string {
	v, _ := k.Get(key)
	return v.Text
}

// Rename gives the entry at pos a new key without moving it. It returns the
// position of the renamed entry, or End if pos is invalid. Positions to the
// entry taken before the call are no longer valid.
//
// Rename does not check for collisions. When newName matches another entry,
// that entry is moved into the renamed entry's place and the renamed value is
// discarded.
func (k *Keys) Rename(pos ordered.Pos, newName string) ordered.Pos {
	if !k.Valid(pos) {
		return ordered.End
	}
	v := *k.Value(pos)
	next := k.Erase(pos)
	it, _ := k.InsertHint(ordered.End, newName, v)
	k.MoveBefore(it, next)
	return it
}

// RenameKey is Rename for the entry stored under key.
func (k *Keys) RenameKey(key, newName string) ordered.Pos {
	return k.Rename(k.Find(key), newName)
}

// Format serializes the table as `key = value` lines, each preceded by its
// comment when comments is true. Keys and values are passed through Escape.
func (k *Keys) Format(comments bool) string {
	var b strings.Builder
	k.format(&b, comments)
	return b.String()
}

func (k *Keys) String() string {
	return k.Format(true)
}

func (k *Keys) format(b *strings.Builder, comments bool) {
	for key, v := range k.All() {
		if comments {
			b.WriteString(FormatComment(v.Comment))
		}
		b.WriteString(Escape(key))
		b.WriteString(" = ")
		b.WriteString(Escape(v.Text))
		b.WriteByte('\n')
	}
}

// clone returns a deep copy of k. A nil table clones to an empty one.
func (k *Keys) clone() *Keys {
	c := NewKeys()
	if k == nil {
		return c
	}
	c.Comment = k.Comment
	for key, v := range k.All() {
		c.Insert(key, v)
	}
	return c
}
