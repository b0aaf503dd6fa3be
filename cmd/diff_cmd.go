package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var errDocumentsDiffer = errors.New("documents differ")

type DiffParams struct {
	NoComments bool `json:"no_comments"` // 比较时忽略注释
	ExitCode   bool `json:"exit_code"`   // 有差异时返回错误
}

func newDiffCmd(root *RootParams) *cobra.Command {
	params := &DiffParams{}
	diffCmd := &cobra.Command{
		Use:   "diff old.ini new.ini",
		Short: "Compare two documents after normalizing them",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := root.open(cmd, args[0])
			if err != nil {
				return err
			}
			to, err := root.open(cmd, args[1])
			if err != nil {
				return err
			}
			out, changed := lineDiff(from.format(!params.NoComments), to.format(!params.NoComments), NewColors())
			fmt.Fprint(cmd.OutOrStdout(), out)
			if changed && params.ExitCode {
				return errDocumentsDiffer
			}
			return nil
		},
	}
	diffCmd.Flags().BoolVar(&params.NoComments, "no-comments", false, "ignore comments")
	diffCmd.Flags().BoolVar(&params.ExitCode, "exit-code", false, "fail when the documents differ")
	return diffCmd
}

// lineDiff 按行比较，输出带 +/- 前缀的结果
func lineDiff(from, to string, colors *Colors) (string, bool) {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from, to)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	changed := false
	for _, d := range diffs {
		prefix, paint := "  ", colors.Default
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+ ", colors.Color(AddColor)
			changed = true
		case diffmatchpatch.DiffDelete:
			prefix, paint = "- ", colors.Color(DelColor)
			changed = true
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(paint("%s%s", prefix, strings.TrimSuffix(line, "\n")))
			out.WriteByte('\n')
		}
	}
	return out.String(), changed
}
