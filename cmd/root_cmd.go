package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dzjyyds666/iq/pkg/logging"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// RootParams 全局参数，所有子命令共享
type RootParams struct {
	Input     string `json:"input"`      // 输入文件路径，"-" 表示标准输入
	Flat      bool   `json:"flat"`       // 无 section 的平铺文件
	Strict    bool   `json:"strict"`     // 遇到无法解析的行时报错
	LogLevel  string `json:"log_level"`  // debug / info / warn / error
	LogFormat string `json:"log_format"` // text / json
	Color     string `json:"color"`      // auto / always / never

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	params := &RootParams{}
	rootCmd := &cobra.Command{
		Use:   "iq",
		Short: "Iq is a tool for querying and editing INI files.",
		Long: "Iq is a tool for querying and editing INI files. It keeps the order of sections and keys " +
			"and the comments attached to them, and can format, convert and compare documents.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return params.setup()
		},
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&params.Input, "input", "i", "", "input file path, - for stdin")
	flags.BoolVar(&params.Flat, "flat", false, "treat the input as a flat key=value file without sections")
	flags.BoolVar(&params.Strict, "strict", false, "fail on lines that cannot be parsed")
	flags.StringVar(&params.LogLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&params.LogFormat, "log-format", "text", "log format: text, json")
	flags.StringVar(&params.Color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGetCmd(params))
	rootCmd.AddCommand(newSetCmd(params))
	rootCmd.AddCommand(newDeleteCmd(params))
	rootCmd.AddCommand(newRenameCmd(params))
	rootCmd.AddCommand(newFmtCmd(params))
	rootCmd.AddCommand(newSectionsCmd(params))
	rootCmd.AddCommand(newKeysCmd(params))
	rootCmd.AddCommand(newShowCmd(params))
	rootCmd.AddCommand(newConvertCmd(params))
	rootCmd.AddCommand(newDiffCmd(params))
	return rootCmd
}

func (p *RootParams) setup() error {
	level, err := logging.ParseLevel(p.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(p.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	p.logger = logging.GetLogger()

	switch p.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		fd := os.Stdout.Fd()
		color.NoColor = os.Getenv("NO_COLOR") != "" || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
	default:
		return fmt.Errorf("unknown color mode %q", p.Color)
	}
	return nil
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of Iq",
		Long:  `All software has versions. This is Iq's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Iq v0.1 -- HEAD")
		},
	}
}
