package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dzjyyds666/iq/parse/ini"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	SectionColor
	KeyColor
	ValueColor
	SepColor
	AddColor
	DelColor
)

// Colors 每种元素对应一个着色函数
type Colors struct {
	Default func(string, ...any) string
	Map     map[ColorAttr]func(string, ...any) string
}

func NewColors() *Colors {
	return &Colors{
		Default: colorDefault,
		Map: map[ColorAttr]func(string, ...any) string{
			CommentColor: color.BlueString,
			SectionColor: color.New(color.FgMagenta, color.Bold).SprintfFunc(),
			KeyColor:     color.RGB(196, 96, 16).SprintfFunc(),
			ValueColor:   color.RGB(128, 216, 236).SprintfFunc(),
			SepColor:     color.New(color.FgHiBlack).SprintfFunc(),
			AddColor:     color.GreenString,
			DelColor:     color.RedString,
		},
	}
}

func colorDefault(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func (c *Colors) Color(attr ColorAttr) func(string, ...any) string {
	if f, ok := c.Map[attr]; ok {
		return f
	}
	return c.Default
}

type ShowParams struct {
	NoComments bool `json:"no_comments"` // 不显示注释
}

func newShowCmd(root *RootParams) *cobra.Command {
	params := &ShowParams{}
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the document with syntax highlighting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), render(doc, NewColors(), !params.NoComments))
			return err
		},
	}
	showCmd.Flags().BoolVar(&params.NoComments, "no-comments", false, "hide comments")
	return showCmd
}

// render 与 ini 的序列化格式一致，只是加上颜色
func render(doc *document, colors *Colors, comments bool) string {
	var b strings.Builder
	comment := func(text string) {
		if !comments {
			return
		}
		for _, line := range strings.SplitAfter(ini.FormatComment(text), "\n") {
			if line == "" {
				continue
			}
			b.WriteString(colors.Color(CommentColor)("%s", strings.TrimSuffix(line, "\n")))
			b.WriteByte('\n')
		}
	}
	entries := func(k *ini.Keys) {
		for key, v := range k.All() {
			comment(v.Comment)
			b.WriteString(colors.Color(KeyColor)("%s", ini.Escape(key)))
			b.WriteString(colors.Color(SepColor)(" = "))
			b.WriteString(colors.Color(ValueColor)("%s", ini.Escape(v.Text)))
			b.WriteByte('\n')
		}
	}

	if doc.flat != nil {
		if root := doc.flat.Root(); root.Comment != "" && comments {
			comment(root.Comment)
			b.WriteByte('\n')
		}
		entries(doc.flat.Root())
		return b.String()
	}
	doc.each(func(section string, k *ini.Keys) {
		comment(k.Comment)
		b.WriteString(colors.Color(SectionColor)("[%s]", ini.Escape(section)))
		b.WriteByte('\n')
		entries(k)
		b.WriteByte('\n')
	})
	return b.String()
}
