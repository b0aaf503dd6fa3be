package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type RenameParams struct {
	Write bool `json:"write"` // 写回输入文件
}

func newRenameCmd(root *RootParams) *cobra.Command {
	params := &RenameParams{}
	renameCmd := &cobra.Command{
		Use:   "rename section [key] new-name | rename key new-name",
		Short: "Rename a section or a key without moving it",
		Args: func(cmd *cobra.Command, args []string) error {
			if root.Flat {
				return cobra.ExactArgs(2)(cmd, args)
			}
			return cobra.RangeArgs(2, 3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			if doc.sections != nil && len(args) == 2 {
				sections := doc.sections.Root()
				if !sections.Contains(args[0]) {
					return fmt.Errorf("%w: %s", errSectionMissing, args[0])
				}
				if sections.RenameSection(args[0], args[1]).IsEnd() {
					return fmt.Errorf("cannot rename section %s: %s already exists", args[0], args[1])
				}
				return doc.save(cmd, params.Write)
			}
			section, rest := doc.split(args)
			keys, err := doc.table(section, false)
			if err != nil {
				return err
			}
			if !keys.Contains(rest[0]) {
				return fmt.Errorf("%w: %s", errKeyMissing, rest[0])
			}
			if keys.Contains(rest[1]) && keys.Find(rest[0]) != keys.Find(rest[1]) {
				root.logger.Warn("rename replaces an existing key", "section", section, "key", rest[1])
			}
			keys.RenameKey(rest[0], rest[1])
			return doc.save(cmd, params.Write)
		},
	}
	renameCmd.Flags().BoolVarP(&params.Write, "write", "w", false, "write the result back to the input file")
	return renameCmd
}
