package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/dzjyyds666/iq/pkg"
	"github.com/spf13/cobra"
)

type FmtParams struct {
	NoComments bool `json:"no_comments"` // 去掉所有注释
	Write      bool `json:"write"`       // 写回输入文件
}

func newFmtCmd(root *RootParams) *cobra.Command {
	params := &FmtParams{}
	fmtCmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a file in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			out := doc.format(!params.NoComments)
			if params.Write && doc.path != "-" {
				return pkg.ReplaceFile(doc.path, []byte(out))
			}
			_, err = io.WriteString(cmd.OutOrStdout(), out)
			return err
		},
	}
	fmtCmd.Flags().BoolVar(&params.NoComments, "no-comments", false, "drop all comments")
	fmtCmd.Flags().BoolVarP(&params.Write, "write", "w", false, "write the result back to the input file")
	return fmtCmd
}

func newSectionsCmd(root *RootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List section names in document order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			if doc.sections == nil {
				return errors.New("a flat document has no sections")
			}
			for _, name := range doc.sections.Root().Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newKeysCmd(root *RootParams) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [section]",
		Short: "List key names in document order",
		Args:  root.sectionArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			section, _ := doc.split(args)
			keys, err := doc.table(section, false)
			if err != nil {
				return err
			}
			for _, name := range keys.Keys() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
