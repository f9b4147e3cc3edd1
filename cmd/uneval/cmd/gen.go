// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package cmd

import (
	"path/filepath"
	"time"

	"github.com/jba/uneval"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	output     string
	declared   string
	declType   string
	pkgName    string
	importPath string
	wrapCow    bool

	genCmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate a Go file declaring the input data",
		Args:  cobra.NoArgs,
		RunE:  genE,
	}
)

func init() {
	genCmd.Flags().StringVarP(&input, "input", "i", "-", "YAML or JSON input file, or - for standard input.")
	genCmd.Flags().StringVarP(&output, "output", "o", "", "Go file to write. Standard output if empty.")
	genCmd.Flags().StringVarP(&declared, "name", "n", "", "Name of the declaration. Derived from the input file name if empty.")
	genCmd.Flags().StringVarP(&declType, "type", "t", "", "Declared type, as Go source. Derived from the data if empty.")
	genCmd.Flags().StringVarP(&pkgName, "package", "p", "", "Package clause of the generated file.")
	genCmd.Flags().StringVar(&importPath, "import-path", "", "Import path of the generated file's package. Found from go.mod if empty.")
	genCmd.Flags().BoolVar(&wrapCow, "cow", false, "Wrap strings and lists in uneval.Cow.")
}

func genE(cmd *cobra.Command, _ []string) error {
	start := time.Now()
	v, err := loadData(input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	v = normalize(v, wrapCow)
	logger.Debug("decoded", "input", input, "type", typeName(v))

	name := declared
	if name == "" {
		name = declName(input)
	}
	path := importPath
	if path == "" && output != "" {
		ip, err := importPathOf(filepath.Dir(output))
		if err != nil {
			return err
		}
		logger.Debug("module lookup", "dir", filepath.Dir(output), "importPath", ip)
		path = ip
	}
	if path == "" {
		path = pkgName
	}
	if path == "" {
		path = "main"
	}
	p := uneval.NewPrinter(path)
	p.SetAutoImport(true)
	decl := uneval.Decl{Name: name, Value: v, Type: declType}

	if output == "" {
		src, err := p.File(pkgName, decl)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(src); err != nil {
			return errors.Wrap(err, "writing output")
		}
		return nil
	}
	if err := p.WriteFile(output, pkgName, decl); err != nil {
		return err
	}
	logger.Info("generated", "name", name, "output", output, "cost", time.Since(start))
	return nil
}
