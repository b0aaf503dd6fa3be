package ini

import (
	"io"
	"strings"

	"github.com/dzjyyds666/iq/pkg/ordered"
)

// =========================
// Parser Implementation
// =========================

// parser walks the input once. Comments collect in a pending buffer until a
// section header or an inserted key claims them; blank lines do not flush it.
type parser struct {
	r       *lineReader
	opts    *options
	comment commentBuf
}

func newParser(r io.Reader, opts *options) *parser {
	return &parser{
		r:    newLineReader(r, opts.maxLine),
		opts: opts,
	}
}

// scan reads the next line, queues its comment and returns the trimmed
// content in front of the comment.
func (p *parser) scan() (string, bool) {
	line, ok := p.r.next()
	if !ok {
		return "", false
	}
	content, comment, _ := SplitComment(line)
	p.queueComment(comment)
	return Trim(content), true
}

func (p *parser) queueComment(comment string) {
	if c := Trim(comment); c != "" {
		p.comment.add(c)
	}
}

func (p *parser) parseKeys(k *Keys) error {
	for {
		content, ok := p.scan()
		if !ok {
			break
		}
		if content == "" {
			continue
		}
		if err := p.keyValue(content, k); err != nil {
			return err
		}
	}
	return p.r.err()
}

// parseSections reopens a section on a repeated header. The section comment
// changes only when comments are pending there, and a duplicate key keeps the
// comment of the first occurrence.
func (p *parser) parseSections(s *Sections) error {
	var cur *Keys
	for {
		content, ok := p.scan()
		if !ok {
			break
		}
		switch {
		case content == "":
			continue
		case isSectionHeader(content):
			cur = s.Section(Unescape(Trim(content[1 : len(content)-1])))
			if !p.comment.empty() {
				cur.Comment = p.comment.take()
			}
		case cur == nil:
			if err := p.drop(ErrOrphanKey, p.r.lineNo, content); err != nil {
				return err
			}
		default:
			if err := p.keyValue(content, cur); err != nil {
				return err
			}
		}
	}
	return p.r.err()
}

// keyValue handles a `key = value` line, pulling continuation lines while
// the value ends in an odd run of backslashes. An empty key is kept unless
// parsing is strict.
func (p *parser) keyValue(content string, k *Keys) error {
	line := p.r.lineNo
	eq := strings.IndexByte(content, '=')
	if eq < 0 {
		return p.drop(ErrMalformedLine, line, content)
	}
	key := Unescape(Trim(content[:eq]))
	raw := Trim(content[eq+1:])
	var val strings.Builder
	for continued(raw) {
		next, ok := p.r.next()
		if !ok {
			break
		}
		val.WriteString(Unescape(raw[:len(raw)-1]))
		cont, comment, _ := SplitComment(next)
		p.queueComment(comment)
		raw = Trim(cont)
	}
	val.WriteString(Unescape(raw))
	if key == "" && p.opts.strict {
		return p.drop(ErrEmptyKey, line, content)
	}

	comment := p.comment.take()
	pos, inserted := k.InsertHint(ordered.End, key, Value{Text: val.String()})
	if !inserted {
		return p.drop(ErrDuplicateKey, line, key)
	}
	k.Value(pos).Comment = comment
	return nil
}

// drop reports a rejected line. Strict parsing turns it into an error;
// otherwise it is logged and skipped.
func (p *parser) drop(err error, line int, text string) error {
	if p.opts.strict {
		return &ParseError{Path: p.opts.path, Line: line, Message: text, Err: err}
	}
	p.opts.logger.Debug("ini: line dropped",
		"path", p.opts.path,
		"line", line,
		"reason", err.Error(),
		"text", text,
	)
	return nil
}
