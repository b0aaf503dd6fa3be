package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

type SetParams struct {
	Comment string `json:"comment"` // 覆盖 key 的注释
	Write   bool   `json:"write"`   // 写回输入文件
}

func newSetCmd(root *RootParams) *cobra.Command {
	params := &SetParams{}
	setCmd := &cobra.Command{
		Use:   "set [section] key value",
		Short: "Set the value of a key, creating the section and key if needed",
		Args:  root.sectionArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			section, rest := doc.split(args)
			keys, err := doc.table(section, true)
			if err != nil {
				return err
			}
			pos := keys.Set(rest[0], rest[1])
			if cmd.Flags().Changed("comment") {
				keys.Value(pos).Comment = params.Comment
			}
			root.logger.Info("key set", "section", section, "key", rest[0])
			return doc.save(cmd, params.Write)
		},
	}
	setCmd.Flags().StringVarP(&params.Comment, "comment", "c", "", "comment to attach to the key")
	setCmd.Flags().BoolVarP(&params.Write, "write", "w", false, "write the result back to the input file")
	return setCmd
}

type DeleteParams struct {
	Write bool `json:"write"` // 写回输入文件
}

func newDeleteCmd(root *RootParams) *cobra.Command {
	params := &DeleteParams{}
	deleteCmd := &cobra.Command{
		Use:   "delete section [key] | delete key",
		Short: "Delete a section or a key",
		Args: func(cmd *cobra.Command, args []string) error {
			if root.Flat {
				return cobra.ExactArgs(1)(cmd, args)
			}
			return cobra.RangeArgs(1, 2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			if doc.sections != nil && len(args) == 1 {
				if !doc.sections.Root().Delete(args[0]) {
					return fmt.Errorf("%w: %s", errSectionMissing, args[0])
				}
				return doc.save(cmd, params.Write)
			}
			section, rest := doc.split(args)
			keys, err := doc.table(section, false)
			if err != nil {
				return err
			}
			if !keys.Delete(rest[0]) {
				return fmt.Errorf("%w: %s", errKeyMissing, rest[0])
			}
			return doc.save(cmd, params.Write)
		},
	}
	deleteCmd.Flags().BoolVarP(&params.Write, "write", "w", false, "write the result back to the input file")
	return deleteCmd
}
