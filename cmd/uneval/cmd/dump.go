// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package cmd

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/jba/uneval"
	"github.com/kr/pretty"
	"github.com/pkg/errors"
	"github.com/sanity-io/litter"
	"github.com/spf13/cobra"
)

var (
	format string

	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Print the decoded input data",
		Long: `Print the decoded input data, either as Go source or with one of
the kr/pretty, sanity-io/litter and go-spew dumpers for comparison.`,
		Args: cobra.NoArgs,
		RunE: dumpE,
	}
)

func init() {
	dumpCmd.Flags().StringVarP(&input, "input", "i", "-", "YAML or JSON input file, or - for standard input.")
	dumpCmd.Flags().StringVarP(&format, "format", "f", "go", "Output format: go, pretty, litter or spew.")
	dumpCmd.Flags().BoolVar(&wrapCow, "cow", false, "Wrap strings and lists in uneval.Cow.")
}

func dumpE(cmd *cobra.Command, _ []string) error {
	v, err := loadData(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	v = normalize(v, wrapCow)
	logger.Debug("decoded", "input", input, "type", typeName(v), "format", format)
	return dump(cmd.OutOrStdout(), v, format)
}

func dump(w io.Writer, v interface{}, format string) error {
	var err error
	switch format {
	case "go":
		p := uneval.NewPrinter("main")
		p.SetAutoImport(true)
		var s string
		if s, err = p.Sprint(v); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, s)
	case "pretty":
		_, err = pretty.Fprintf(w, "%# v\n", v)
	case "litter":
		_, err = io.WriteString(w, litter.Options{StrictGo: true, HomePackage: "main"}.Sdump(v)+"\n")
	case "spew":
		spew.Fdump(w, v)
	default:
		return errors.Errorf("unknown format %q; want go, pretty, litter or spew", format)
	}
	return errors.Wrap(err, "writing output")
}

func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
