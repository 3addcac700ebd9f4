package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/search"
)

func newMatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <pattern> [file|dir|-]...",
		Short: "List elements whose name matches a pattern",
		Long:  "List elements whose name fully matches a regular expression, or a glob with --glob.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(cmd, v, args)
		},
	}
	cmd.Flags().Bool("glob", false, "Treat the pattern as a glob")
	cmd.Flags().BoolP("ignore-case", "i", false, "Match regular expressions case-insensitively")
	return cmd
}

func runMatch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	useGlob, _ := cmd.Flags().GetBool("glob")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")

	matcher, err := newMatcher(args[0], useGlob, !ignoreCase)
	if err != nil {
		return err
	}
	inputs, err := readInputs(cmd.InOrStdin(), args[1:])
	if err != nil {
		return err
	}

	parser := ml_parser.NewParser(config.FromViper(v))
	out := cmd.OutOrStdout()
	for _, input := range inputs {
		result := parser.ParseContext(cmd.Context(), input.content, input.url)
		for _, tag := range search.FindTags(result.Document, matcher) {
			start := tag.StartSpan.Start
			fmt.Fprintf(out, "%s:%d:%d\t%s\n", input.url, start.Line+1, start.Col+1, tag.Name)
		}
	}
	return nil
}

func newMatcher(pattern string, useGlob, caseSensitive bool) (search.Matcher, error) {
	if useGlob {
		return search.NewGlobMatcher(pattern)
	}
	return search.NewRegexpMatcher(pattern, caseSensitive)
}
