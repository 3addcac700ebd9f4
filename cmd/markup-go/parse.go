package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"markup-go/packages/markup/src/config"
	"markup-go/packages/markup/src/ml_parser"
	"markup-go/packages/markup/src/util"
)

func newParseCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [file|dir|-]...",
		Short: "Parse markup and print the tag tree",
		Long:  "Parse each input and print its tag tree, embedded expressions and diagnostics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, v, args)
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format: yaml or json")
	cmd.Flags().Bool("strict", false, "Exit with an error when any error-level diagnostic was reported")
	return cmd
}

func runParse(cmd *cobra.Command, v *viper.Viper, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	strict, _ := cmd.Flags().GetBool("strict")

	inputs, err := readInputs(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	parser := ml_parser.NewParser(config.FromViper(v))
	var dumps []documentDump
	failed := 0
	for _, input := range inputs {
		result := parser.ParseContext(cmd.Context(), input.content, input.url)
		for _, perr := range result.Errors {
			if perr.Level == util.ParseErrorLevelError {
				failed++
			}
		}
		dumps = append(dumps, dumpResult(result))
	}

	if err := writeDumps(cmd.OutOrStdout(), format, dumps); err != nil {
		return err
	}
	if strict && failed > 0 {
		return fmt.Errorf("%d error diagnostics reported", failed)
	}
	return nil
}

func writeDumps(w io.Writer, format string, dumps []documentDump) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		for _, dump := range dumps {
			if err := enc.Encode(dump); err != nil {
				return fmt.Errorf("encoding yaml: %w", err)
			}
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		for _, dump := range dumps {
			if err := enc.Encode(dump); err != nil {
				return fmt.Errorf("encoding json: %w", err)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q, want yaml or json", format)
	}
}
