package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/util"
)

func newTokensCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a markup file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTokens(cmd, v, args)
		},
	}
}

func runTokens(cmd *cobra.Command, v *viper.Viper, args []string) error {
	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	defs := ml_parser.NewParser(config.FromViper(v)).TagDefinitions()
	out := cmd.OutOrStdout()
	for _, input := range inputs {
		result := ml_parser.Tokenize(util.NewParseSourceFile(input.content, input.url), defs)
		for _, token := range result.Tokens {
			start := token.SourceSpan().Start
			fmt.Fprintf(out, "%d:%d\t%s\t%q\n", start.Line+1, start.Col+1, token.Type(), token.Lexeme())
		}
		for _, perr := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", perr)
		}
	}
	return nil
}
