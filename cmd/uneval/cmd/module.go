// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package cmd

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/mod/modfile"
)

// module is a parsed go.mod and the directory that holds it.
type module struct {
	dir  string
	file *modfile.File
}

// loadModule returns the module enclosing dir, which must be absolute,
// or nil if there is none.
func loadModule(dir string) (*module, error) {
	filename := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		return loadModule(parent)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	file, err := modfile.Parse(filename, data, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", filename)
	}
	if file.Module == nil {
		return nil, errors.Errorf("%s has no module directive", filename)
	}
	return &module{dir: dir, file: file}, nil
}

// importPathOf returns the import path of the package in dir, from the
// module that encloses it. It returns "" if dir is not in a module.
func importPathOf(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WithStack(err)
	}
	m, err := loadModule(dir)
	if err != nil || m == nil {
		return "", err
	}
	rel, err := filepath.Rel(m.dir, dir)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return path.Join(m.file.Module.Mod.Path, filepath.ToSlash(rel)), nil
}
