package cmd

import (
	"fmt"

	"github.com/dzjyyds666/iq/parse/ini"
	"github.com/spf13/cobra"
)

type GetParams struct {
	Comment bool   `json:"comment"` // 同时输出注释
	As      string `json:"as"`      // 按类型输出: string / int / float / bool
}

func newGetCmd(root *RootParams) *cobra.Command {
	params := &GetParams{}
	getCmd := &cobra.Command{
		Use:   "get [section] key",
		Short: "Print the value of a key",
		Args:  root.sectionArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			section, rest := doc.split(args)
			keys, err := doc.table(section, false)
			if err != nil {
				return err
			}
			v, ok := keys.Get(rest[0])
			if !ok {
				return fmt.Errorf("%w: %s", errKeyMissing, rest[0])
			}
			out, err := convertValue(v, params.As)
			if err != nil {
				return err
			}
			if params.Comment && v.Comment != "" {
				fmt.Fprint(cmd.OutOrStdout(), ini.FormatComment(v.Comment))
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	getCmd.Flags().BoolVarP(&params.Comment, "comment", "c", false, "print the comment above the value")
	getCmd.Flags().StringVar(&params.As, "as", "string", "print the value as string, int, float or bool")
	return getCmd
}

// convertValue 先按类型读取再写回，得到规范化的文本
func convertValue(v ini.Value, as string) (string, error) {
	var out ini.Value
	switch as {
	case "", "string":
		return v.Text, nil
	case "int":
		ini.Write(&out, ini.Read[int64](v))
	case "uint":
		ini.Write(&out, ini.Read[uint64](v))
	case "float":
		ini.Write(&out, ini.Read[float64](v))
	case "bool":
		ini.Write(&out, ini.Read[bool](v))
	default:
		return "", fmt.Errorf("unknown value type %q", as)
	}
	return out.Text, nil
}
