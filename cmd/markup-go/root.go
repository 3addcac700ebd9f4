package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	slogcontext "github.com/veqryn/slog-context"

	"markup-go/packages/markup/src/config"
)

// newRootCmd builds the command tree. Each tree owns its flags and viper
// instance.
func newRootCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "markup-go",
		Short: "Fault-tolerant markup parser",
		Long: "markup-go parses HTML-like markup into a tag tree, recovering from malformed input " +
			"and parsing {{ }} expressions found in attribute values and element content.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd, v)
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (yaml, toml or json)")
	cmd.PersistentFlags().Bool("debug", false, "Debug output")
	cmd.PersistentFlags().StringSlice("void", nil, "Void element names (replaces the defaults)")
	cmd.PersistentFlags().StringSlice("raw-text", nil, "Raw-text element names (replaces the defaults)")

	_ = v.BindPFlag("debug", cmd.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag(config.KeyVoidElements, cmd.PersistentFlags().Lookup("void"))
	_ = v.BindPFlag(config.KeyRawTextElements, cmd.PersistentFlags().Lookup("raw-text"))

	cmd.AddCommand(newParseCmd(v), newTokensCmd(v), newMatchCmd(v))
	return cmd
}

func setup(cmd *cobra.Command, v *viper.Viper) error {
	path, _ := cmd.Flags().GetString("config")
	if err := config.Configure(v, path); err != nil {
		return err
	}

	level := slog.LevelWarn
	if v.GetBool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	cmd.SetContext(slogcontext.NewCtx(cmd.Context(), logger))
	return nil
}
