package cmd

import (
	"fmt"

	"github.com/dzjyyds666/iq/parse/ini"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

type ConvertParams struct {
	To    string `json:"to"`    // 目标格式，目前只支持 yaml
	Typed bool   `json:"typed"` // 把数字和布尔值按类型输出
}

func newConvertCmd(root *RootParams) *cobra.Command {
	params := &ConvertParams{}
	convertCmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert the document to another format, keeping its order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if params.To != "yaml" {
				return fmt.Errorf("unsupported target format %q", params.To)
			}
			doc, err := root.open(cmd, root.Input)
			if err != nil {
				return err
			}
			out, err := toYAML(doc, params.Typed)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	convertCmd.Flags().StringVar(&params.To, "to", "yaml", "target format: yaml")
	convertCmd.Flags().BoolVar(&params.Typed, "typed", false, "emit integers, floats and booleans as typed scalars")
	return convertCmd
}

func toYAML(doc *document, typed bool) ([]byte, error) {
	table := func(k *ini.Keys) yaml.MapSlice {
		items := make(yaml.MapSlice, 0, k.Len())
		for key, v := range k.All() {
			items = append(items, yaml.MapItem{Key: key, Value: scalar(v, typed)})
		}
		return items
	}

	var out yaml.MapSlice
	if doc.flat != nil {
		out = table(doc.flat.Root())
	} else {
		doc.each(func(section string, k *ini.Keys) {
			out = append(out, yaml.MapItem{Key: section, Value: table(k)})
		})
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return data, nil
}

// scalar 只有文本和规范化后的写法完全一致时才按类型输出，避免丢信息
func scalar(v ini.Value, typed bool) any {
	if !typed {
		return v.Text
	}
	var norm ini.Value
	if n := ini.Read[int64](v); sameText(&norm, v, n) {
		return n
	}
	if f := ini.Read[float64](v); sameText(&norm, v, f) {
		return f
	}
	if b := ini.Read[bool](v); sameText(&norm, v, b) {
		return b
	}
	return v.Text
}

func sameText[T ini.Number](norm *ini.Value, v ini.Value, x T) bool {
	ini.Write(norm, x)
	return norm.Text == v.Text
}
