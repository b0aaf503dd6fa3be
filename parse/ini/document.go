// Package ini implements an order-preserving, comment-aware document model
// for INI files.
//
// A document is either sectioned (Document[*Sections]) or flat
// (Document[*Keys]); the mode is fixed by the constructor. Key and section
// names are matched ignoring ASCII case and keep their original case for
// output. Parsing is best effort: lines that cannot be placed are dropped
// unless WithStrict is given.
//
// Format:
//
//	; comment for the section
//	[section]
//	# comment for the key
//	key = value ; trailing comment, also attached to key
//	long = first \
//	       second
//
// Output always uses `#` comments, `key = value` entries and a blank line
// after every section, and parses back to the same structure.
package ini

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// =========================
// Public API
// =========================

// Body is the root of a document: a section table or a flat key table.
type Body interface {
	*Sections | *Keys
	Clear()
	Format(comments bool) string
}

// Document owns a parsed INI body. It is not safe for concurrent use;
// distinct documents are independent.
type Document[B Body] struct {
	root B
	opts options
}

// New returns an empty sectioned document.
func New(opts ...Option) *Document[*Sections] {
	return newDocument(NewSections(), opts)
}

// NewFlat returns an empty document without sections.
func NewFlat(opts ...Option) *Document[*Keys] {
	return newDocument(NewKeys(), opts)
}

func newDocument[B Body](root B, opts []Option) *Document[B] {
	d := &Document[B]{root: root, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&d.opts)
	}
	return d
}

// Open parses the sectioned document stored at path.
func Open(path string, opts ...Option) (*Document[*Sections], error) {
	d := New(opts...)
	if err := d.ParseFile(path); err != nil {
		return nil, err
	}
	return d, nil
}

// OpenFlat parses the flat document stored at path.
func OpenFlat(path string, opts ...Option) (*Document[*Keys], error) {
	d := NewFlat(opts...)
	if err := d.ParseFile(path); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseString parses src as a sectioned document.
func ParseString(src string, opts ...Option) (*Document[*Sections], error) {
	d := New(opts...)
	if err := d.ParseString(src); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseStringFlat parses src as a flat document.
func ParseStringFlat(src string, opts ...Option) (*Document[*Keys], error) {
	d := NewFlat(opts...)
	if err := d.ParseString(src); err != nil {
		return nil, err
	}
	return d, nil
}

// Root returns the document body.
func (d *Document[B]) Root() B { return d.root }

// Clear empties the document.
func (d *Document[B]) Clear() { d.root.Clear() }

// Parse replaces the document contents with what r holds. r stays open.
func (d *Document[B]) Parse(r io.Reader) error {
	return d.parse(r, "")
}

// ParseString replaces the document contents with src.
func (d *Document[B]) ParseString(src string) error {
	return d.parse(strings.NewReader(src), "")
}

// ParseFile replaces the document contents with the file at path. The file
// is closed before ParseFile returns.
func (d *Document[B]) ParseFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open ini file: %w", err)
	}
	defer f.Close()
	return d.parse(f, path)
}

func (d *Document[B]) parse(r io.Reader, path string) error {
	d.root.Clear()
	opts := d.opts
	opts.path = path
	p := newParser(r, &opts)

	var err error
	switch root := any(d.root).(type) {
	case *Sections:
		err = p.parseSections(root)
	case *Keys:
		err = p.parseKeys(root)
	}
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			return err
		}
		return fmt.Errorf("read ini: %w", err)
	}
	return nil
}

// Format serializes the document, with or without comments.
func (d *Document[B]) Format(comments bool) string {
	if k, ok := any(d.root).(*Keys); ok && comments && k.Comment != "" {
		return FormatComment(k.Comment) + "\n" + k.Format(comments)
	}
	return d.root.Format(comments)
}

// String serializes the document with comments.
func (d *Document[B]) String() string {
	return d.Format(true)
}

// WriteTo writes the serialized document to w. w stays open.
func (d *Document[B]) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

// WriteFile writes the serialized document to path, creating or truncating
// it. The file is closed before WriteFile returns.
func (d *Document[B]) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create ini file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close ini file: %w", cerr)
		}
	}()
	if _, err = d.WriteTo(f); err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	return nil
}

// Clone returns a deep copy of the document with the same options.
func (d *Document[B]) Clone() *Document[B] {
	c := &Document[B]{opts: d.opts}
	switch root := any(d.root).(type) {
	case *Sections:
		c.root = any(root.clone()).(B)
	case *Keys:
		c.root = any(root.clone()).(B)
	}
	return c
}
