package ini

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/smartystreets/goconvey/convey"
)

func TestCommentAttachment(t *testing.T) {
	convey.Convey("comments attach to the next section or key", t, func() {
		src := `
; greeting
[hello]
; value comment
name = world
`
		doc, err := ParseString(src)
		convey.So(err, convey.ShouldBeNil)
		hello, ok := doc.Root().Get("hello")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(hello.Comment, convey.ShouldEqual, "greeting")
		v, ok := hello.Get("name")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(v.Text, convey.ShouldEqual, "world")
		convey.So(v.Comment, convey.ShouldEqual, "value comment")
	})

	convey.Convey("inline and stacked comments are joined", t, func() {
		src := `[s]
# one

; two
key = v # three
`
		doc, err := ParseString(src)
		convey.So(err, convey.ShouldBeNil)
		v, _ := doc.Root().Lookup("s", "key")
		convey.So(v.Text, convey.ShouldEqual, "v")
		convey.So(v.Comment, convey.ShouldEqual, "one\ntwo\nthree")
	})

	convey.Convey("comments before the first section belong to it", t, func() {
		doc, err := ParseString("# preamble\norphan = 1\n# head\n[a]\nk = v\n")
		convey.So(err, convey.ShouldBeNil)
		a, _ := doc.Root().Get("a")
		convey.So(a.Comment, convey.ShouldEqual, "preamble\nhead")
	})
}

func TestContinuation(t *testing.T) {
	convey.Convey("a trailing backslash joins the next line", t, func() {
		doc, err := ParseString("[s]\nkey = abc\\\ndef\n")
		convey.So(err, convey.ShouldBeNil)
		v, _ := doc.Root().Lookup("s", "key")
		convey.So(v.Text, convey.ShouldEqual, "abcdef")
	})

	convey.Convey("continuation comments are kept", t, func() {
		src := "[s]\nk = a \\ ; first\n   b \\\n  c ; second\nnext = 1\n"
		doc, err := ParseString(src)
		convey.So(err, convey.ShouldBeNil)
		v, _ := doc.Root().Lookup("s", "k")
		convey.So(v.Text, convey.ShouldEqual, "a b c")
		convey.So(v.Comment, convey.ShouldEqual, "first\nsecond")
		n, ok := doc.Root().Lookup("s", "next")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(n.Comment, convey.ShouldEqual, "")
	})

	convey.Convey("only an odd run of backslashes continues", t, func() {
		doc, err := ParseString("[s]\na = C:\\dir\\\\\nb = x\\\\\\\ny\n")
		convey.So(err, convey.ShouldBeNil)
		s, _ := doc.Root().Get("s")
		convey.So(s.Keys(), convey.ShouldResemble, []string{"a", "b"})
		convey.So(s.Text("a"), convey.ShouldEqual, `C:\dir\`)
		convey.So(s.Text("b"), convey.ShouldEqual, `x\y`)
	})

	convey.Convey("a backslash on the last line stays", t, func() {
		doc, err := ParseString("[s]\nk = tail\\")
		convey.So(err, convey.ShouldBeNil)
		v, _ := doc.Root().Lookup("s", "k")
		convey.So(v.Text, convey.ShouldEqual, `tail\`)
	})
}

func TestBestEffort(t *testing.T) {
	convey.Convey("orphan keys are dropped", t, func() {
		doc, err := ParseString("a = 1\n[s]\nb = 2\n")
		convey.So(err, convey.ShouldBeNil)
		convey.So(doc.Root().Len(), convey.ShouldEqual, 1)
		_, ok := doc.Root().Lookup("s", "a")
		convey.So(ok, convey.ShouldBeFalse)
		s, _ := doc.Root().Get("s")
		convey.So(s.Keys(), convey.ShouldResemble, []string{"b"})
	})

	convey.Convey("lines without = are dropped", t, func() {
		doc, err := ParseString("[s]\njunk\nempty =\n")
		convey.So(err, convey.ShouldBeNil)
		s, _ := doc.Root().Get("s")
		convey.So(s.Keys(), convey.ShouldResemble, []string{"empty"})
		convey.So(s.Text("empty"), convey.ShouldEqual, "")
	})

	convey.Convey("an empty key is kept and written back", t, func() {
		doc, err := ParseString("[s]\n# anonymous\n= v\nk = 1\n")
		convey.So(err, convey.ShouldBeNil)
		s, _ := doc.Root().Get("s")
		convey.So(s.Len(), convey.ShouldEqual, 2)
		convey.So(s.Keys(), convey.ShouldResemble, []string{"", "k"})
		v, ok := s.Get("")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(v.Text, convey.ShouldEqual, "v")
		convey.So(v.Comment, convey.ShouldEqual, "anonymous")
		convey.So(doc.String(), convey.ShouldEqual, "[s]\n# anonymous\n = v\nk = 1\n\n")

		again, err := ParseString(doc.String())
		convey.So(err, convey.ShouldBeNil)
		convey.So(again.String(), convey.ShouldEqual, doc.String())
	})

	convey.Convey("case variants keep the first occurrence", t, func() {
		doc, err := ParseString("[s]\nKey=1\nKEY=2\n")
		convey.So(err, convey.ShouldBeNil)
		s, _ := doc.Root().Get("S")
		convey.So(s.Len(), convey.ShouldEqual, 1)
		convey.So(s.Keys(), convey.ShouldResemble, []string{"Key"})
		convey.So(s.Text("key"), convey.ShouldEqual, "1")
	})

	convey.Convey("a repeated header reopens the section", t, func() {
		doc, err := ParseString("[a]\nx = 1\n[b]\ny = 2\n[A]\nz = 3\n")
		convey.So(err, convey.ShouldBeNil)
		convey.So(doc.Root().Keys(), convey.ShouldResemble, []string{"a", "b"})
		a, _ := doc.Root().Get("a")
		convey.So(a.Keys(), convey.ShouldResemble, []string{"x", "z"})
	})

	convey.Convey("dropped lines are logged at debug level", t, func() {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		_, err := ParseString("stray = 1\n", WithLogger(logger))
		convey.So(err, convey.ShouldBeNil)
		convey.So(buf.String(), convey.ShouldContainSubstring, "line dropped")
		convey.So(buf.String(), convey.ShouldContainSubstring, ErrOrphanKey.Error())
	})
}

func TestStrict(t *testing.T) {
	convey.Convey("strict parsing reports the first dropped line", t, func() {
		cases := []struct {
			src  string
			line int
			want error
		}{
			{"a = 1\n[s]\n", 1, ErrOrphanKey},
			{"[s]\n\nnoequals\n", 3, ErrMalformedLine},
			{"[s]\n = v\n", 2, ErrEmptyKey},
			{"[s]\na=1\nA=2\n", 3, ErrDuplicateKey},
		}
		for _, c := range cases {
			_, err := ParseString(c.src, WithStrict())
			convey.So(errors.Is(err, c.want), convey.ShouldBeTrue)
			var pe *ParseError
			convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
			convey.So(pe.Line, convey.ShouldEqual, c.line)
		}
	})

	convey.Convey("strict parsing accepts clean input", t, func() {
		_, err := ParseString("; c\n[s]\na = 1\n", WithStrict())
		convey.So(err, convey.ShouldBeNil)
	})
}

func TestRename(t *testing.T) {
	convey.Convey("renaming a section keeps its place", t, func() {
		doc := New()
		root := doc.Root()
		root.Section("A").Set("k", "1")
		root.Section("B").Set("k", "2")
		root.Section("C").Set("k", "3")
		a, c := root.Find("A"), root.Find("C")

		p := root.RenameSection("B", "B2")
		convey.So(p.IsEnd(), convey.ShouldBeFalse)
		convey.So(root.Keys(), convey.ShouldResemble, []string{"A", "B2", "C"})
		convey.So(root.Valid(a), convey.ShouldBeTrue)
		convey.So(root.Valid(c), convey.ShouldBeTrue)
		convey.So(root.Next(a), convey.ShouldResemble, p)
		convey.So(root.Next(p), convey.ShouldResemble, c)
		b2, _ := root.Get("b2")
		convey.So(b2.Text("k"), convey.ShouldEqual, "2")

		seen := 0
		for range root.All() {
			seen++
		}
		convey.So(seen, convey.ShouldEqual, 3)
	})

	convey.Convey("section rename refuses an existing name", t, func() {
		doc, _ := ParseString("[a]\n[b]\n")
		root := doc.Root()
		convey.So(root.RenameSection("a", "B").IsEnd(), convey.ShouldBeTrue)
		convey.So(root.RenameSection("missing", "x").IsEnd(), convey.ShouldBeTrue)
		convey.So(root.Keys(), convey.ShouldResemble, []string{"a", "b"})
	})

	convey.Convey("renaming the first and last entries", t, func() {
		k := NewKeys()
		k.Set("a", "1")
		k.Set("b", "2")
		k.Set("c", "3")
		k.RenameKey("a", "first")
		k.RenameKey("c", "last")
		if diff := cmp.Diff([]string{"first", "b", "last"}, k.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
		convey.So(k.Text("first"), convey.ShouldEqual, "1")
		convey.So(k.Text("last"), convey.ShouldEqual, "3")
	})

	convey.Convey("key rename keeps the comment and can change case", t, func() {
		doc, _ := ParseString("[s]\n# note\nname = v\nother = w\n")
		s, _ := doc.Root().Get("s")
		p := s.RenameKey("name", "NAME")
		convey.So(s.Key(p), convey.ShouldEqual, "NAME")
		convey.So(s.Value(p).Comment, convey.ShouldEqual, "note")
		convey.So(s.Keys(), convey.ShouldResemble, []string{"NAME", "other"})
	})

	convey.Convey("key rename onto an existing key moves that key", t, func() {
		k := NewKeys()
		k.Set("a", "1")
		k.Set("b", "2")
		k.Set("c", "3")
		p := k.RenameKey("a", "c")
		convey.So(k.Key(p), convey.ShouldEqual, "c")
		convey.So(k.Keys(), convey.ShouldResemble, []string{"c", "b"})
		convey.So(k.Text("c"), convey.ShouldEqual, "3")
	})
}

func TestFormat(t *testing.T) {
	src := `; greeting
[hello]
; value comment
name = world ; inline
[Other]
x=1
`
	want := `# greeting
[hello]
# value comment
# inline
name = world

[Other]
x = 1

`
	convey.Convey("serialization normalizes comments and spacing", t, func() {
		doc, err := ParseString(src)
		convey.So(err, convey.ShouldBeNil)
		convey.So(doc.String(), convey.ShouldEqual, want)
		convey.So(doc.Format(false), convey.ShouldEqual, "[hello]\nname = world\n\n[Other]\nx = 1\n\n")
	})

	convey.Convey("serialized output parses back to the same document", t, func() {
		doc, err := ParseString(src)
		convey.So(err, convey.ShouldBeNil)
		again, err := ParseString(doc.String())
		convey.So(err, convey.ShouldBeNil)
		convey.So(again.String(), convey.ShouldEqual, doc.String())
		convey.So(again.Root().Keys(), convey.ShouldResemble, doc.Root().Keys())
	})

	convey.Convey("documents built through the API round-trip", t, func() {
		doc := New()
		db := doc.Root().Section("Database")
		db.Comment = "connection\nsettings"
		p := db.Set("Host", "localhost")
		db.Value(p).Comment = "primary"
		Write(db.Value(db.Set("Port", "")), 5432)
		Write(db.Value(db.Set("Ratio", "")), 0.1)
		doc.Root().Section("empty")
		paths := doc.Root().Section("paths;win")
		paths.Set("a", `C:\dir\`)
		paths.Set("b", "x;y")
		paths.Set("c", "z")
		paths.Set("d#", `\;#`)

		again, err := ParseString(doc.String())
		convey.So(err, convey.ShouldBeNil)
		convey.So(again.String(), convey.ShouldEqual, doc.String())
		got, _ := again.Root().Get("database")
		convey.So(got.Comment, convey.ShouldEqual, "connection\nsettings")
		convey.So(Read[int](mustGet(got, "port")), convey.ShouldEqual, 5432)
		convey.So(Read[float64](mustGet(got, "ratio")), convey.ShouldEqual, 0.1)
		convey.So(again.Root().Keys(), convey.ShouldResemble, []string{"Database", "empty", "paths;win"})
		win, ok := again.Root().Get("paths;win")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(win.Keys(), convey.ShouldResemble, []string{"a", "b", "c", "d#"})
		convey.So(win.Text("a"), convey.ShouldEqual, `C:\dir\`)
		convey.So(win.Text("b"), convey.ShouldEqual, "x;y")
		convey.So(win.Text("c"), convey.ShouldEqual, "z")
		convey.So(win.Text("d#"), convey.ShouldEqual, `\;#`)
	})

	convey.Convey("nil section tables read as empty", t, func() {
		root := NewSections()
		root.Insert("a", nil)
		p, _ := root.Map.Insert("b", nil)
		convey.So(*root.Value(p), convey.ShouldBeNil)

		a, ok := root.Get("a")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(a, convey.ShouldNotBeNil)
		_, ok = root.Lookup("b", "k")
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(root.String(), convey.ShouldEqual, "[a]\n\n[b]\n\n")
		convey.So(root.clone().Keys(), convey.ShouldResemble, []string{"a", "b"})
		convey.So(root.Section("b").Len(), convey.ShouldEqual, 0)
	})
}

func mustGet(k *Keys, key string) Value {
	v, ok := k.Get(key)
	if !ok {
		panic("missing key " + key)
	}
	return v
}

func TestFlat(t *testing.T) {
	convey.Convey("flat documents have no sections", t, func() {
		doc, err := ParseStringFlat("; top\na = 1\n\nb = 2 # note\nnot a pair\n[x]\n")
		convey.So(err, convey.ShouldBeNil)
		root := doc.Root()
		convey.So(root.Keys(), convey.ShouldResemble, []string{"a", "b"})
		a, _ := root.Get("A")
		convey.So(a.Comment, convey.ShouldEqual, "top")
		b, _ := root.Get("b")
		convey.So(b.Comment, convey.ShouldEqual, "note")
		convey.So(doc.String(), convey.ShouldEqual, "# top\na = 1\n# note\nb = 2\n")
	})

	convey.Convey("the flat table comment is written as a preamble", t, func() {
		doc := NewFlat()
		doc.Root().Comment = "header"
		doc.Root().Set("a", "1")
		convey.So(doc.String(), convey.ShouldEqual, "# header\n\na = 1\n")
		convey.So(doc.Format(false), convey.ShouldEqual, "a = 1\n")
	})
}

func TestLifecycle(t *testing.T) {
	convey.Convey("parsing again replaces the contents", t, func() {
		doc := New()
		convey.So(doc.ParseString("[a]\nx = 1\n"), convey.ShouldBeNil)
		convey.So(doc.ParseString("[b]\ny = 2\n"), convey.ShouldBeNil)
		convey.So(doc.Root().Keys(), convey.ShouldResemble, []string{"b"})
		doc.Clear()
		convey.So(doc.Root().Len(), convey.ShouldEqual, 0)
	})

	convey.Convey("files are written and read back", t, func() {
		path := filepath.Join(t.TempDir(), "conf.ini")
		doc, _ := ParseString("[s]\nk = v\n")
		convey.So(doc.WriteFile(path), convey.ShouldBeNil)

		data, err := os.ReadFile(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(data), convey.ShouldEqual, "[s]\nk = v\n\n")

		again, err := Open(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(again.Root().Keys(), convey.ShouldResemble, []string{"s"})

		flat, err := OpenFlat(path)
		convey.So(err, convey.ShouldBeNil)
		convey.So(flat.Root().Keys(), convey.ShouldResemble, []string{"k"})
	})

	convey.Convey("a missing file is an error", t, func() {
		_, err := Open(filepath.Join(t.TempDir(), "missing.ini"))
		convey.So(errors.Is(err, fs.ErrNotExist), convey.ShouldBeTrue)
	})

	convey.Convey("strict errors carry the file path", t, func() {
		path := filepath.Join(t.TempDir(), "bad.ini")
		convey.So(os.WriteFile(path, []byte("[s]\nbad\n"), 0o644), convey.ShouldBeNil)
		_, err := Open(path, WithStrict())
		var pe *ParseError
		convey.So(errors.As(err, &pe), convey.ShouldBeTrue)
		convey.So(pe.Path, convey.ShouldEqual, path)
		convey.So(err.Error(), convey.ShouldContainSubstring, path+":2")
	})

	convey.Convey("over-long lines are a read error", t, func() {
		doc := New(WithMaxLineSize(16))
		err := doc.ParseString("[s]\nk = " + strings.Repeat("x", 64) + "\n")
		convey.So(err, convey.ShouldNotBeNil)
	})

	convey.Convey("write to a stream and clone", t, func() {
		doc, _ := ParseString("[s]\nk = v\n")
		var buf bytes.Buffer
		n, err := doc.WriteTo(&buf)
		convey.So(err, convey.ShouldBeNil)
		convey.So(n, convey.ShouldEqual, int64(buf.Len()))

		c := doc.Clone()
		c.Root().Section("s").Set("k", "changed")
		convey.So(doc.Root().Section("s").Text("k"), convey.ShouldEqual, "v")
	})
}
