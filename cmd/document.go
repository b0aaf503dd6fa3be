package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dzjyyds666/iq/parse/ini"
	"github.com/dzjyyds666/iq/pkg"
	"github.com/spf13/cobra"
)

var (
	errNoInput        = errors.New("no input file path")
	errSectionMissing = errors.New("section not found")
	errKeyMissing     = errors.New("key not found")
)

// document 包装平铺和分节两种模式，命令只跟它打交道
type document struct {
	path     string
	sections *ini.Document[*ini.Sections]
	flat     *ini.Document[*ini.Keys]
}

func (p *RootParams) options() []ini.Option {
	opts := []ini.Option{ini.WithLogger(p.logger)}
	if p.Strict {
		opts = append(opts, ini.WithStrict())
	}
	return opts
}

// sectionArgs 分节模式下第一个参数是 section 名
func (p *RootParams) sectionArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		want := n
		if !p.Flat {
			want++
		}
		if len(args) != want {
			return fmt.Errorf("accepts %d arg(s), received %d", want, len(args))
		}
		return nil
	}
}

func (p *RootParams) open(cmd *cobra.Command, path string) (*document, error) {
	if len(path) == 0 {
		return nil, errNoInput
	}
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		exist, err := pkg.CheckFileExist(path)
		if err != nil {
			return nil, fmt.Errorf("check file exist: %w", err)
		}
		if !exist {
			return nil, fmt.Errorf("input file %s does not exist", path)
		}
	}

	d := &document{path: path}
	var err error
	if p.Flat {
		d.flat = ini.NewFlat(p.options()...)
		err = parseInto(d.flat, path, r)
	} else {
		d.sections = ini.New(p.options()...)
		err = parseInto(d.sections, path, r)
	}
	if err != nil {
		return nil, err
	}
	p.logger.Debug("document parsed", "path", path, "flat", p.Flat, "entries", d.len())
	return d, nil
}

func parseInto[B ini.Body](doc *ini.Document[B], path string, r io.Reader) error {
	if r != nil {
		return doc.Parse(r)
	}
	return doc.ParseFile(path)
}

func (d *document) len() int {
	if d.flat != nil {
		return d.flat.Root().Len()
	}
	return d.sections.Root().Len()
}

// split 把参数拆成 section 名和剩余部分
func (d *document) split(args []string) (string, []string) {
	if d.flat != nil {
		return "", args
	}
	return args[0], args[1:]
}

// table 返回 section 对应的 key 表，平铺模式下返回根表
func (d *document) table(section string, create bool) (*ini.Keys, error) {
	if d.flat != nil {
		return d.flat.Root(), nil
	}
	if create {
		return d.sections.Root().Section(section), nil
	}
	k, ok := d.sections.Root().Get(section)
	if !ok {
		return nil, fmt.Errorf("%w: %s", errSectionMissing, section)
	}
	return k, nil
}

// each 按文档顺序遍历每个 key 表
func (d *document) each(fn func(section string, k *ini.Keys)) {
	if d.flat != nil {
		fn("", d.flat.Root())
		return
	}
	for name, k := range d.sections.Root().All() {
		fn(name, k)
	}
}

func (d *document) format(comments bool) string {
	if d.flat != nil {
		return d.flat.Format(comments)
	}
	return d.sections.Format(comments)
}

// save 写回原文件，或输出到标准输出
func (d *document) save(cmd *cobra.Command, write bool) error {
	if write && d.path != "-" {
		return pkg.ReplaceFile(d.path, []byte(d.format(true)))
	}
	_, err := io.WriteString(cmd.OutOrStdout(), d.format(true))
	return err
}
