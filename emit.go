// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path"
	"reflect"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/tools/imports"
	gofumpt "mvdan.cc/gofumpt/format"
)

// GeneratedHeader is the first line of files written by Printer.File.
const GeneratedHeader = "// Code generated by uneval. DO NOT EDIT."

const filePerm = 0o644

// A Decl is a named value to declare in generated source.
type Decl struct {
	Name  string
	Value interface{}
	// Type is the declared type, written as Go source in the generated
	// package. If empty, it is derived from Value.
	Type string
}

// Declare returns a Go declaration of name with the given value.
//
// The declaration is a const if value is a boolean, string or finite number,
// and a var otherwise, since Go constants cannot hold composite values.
// If typ is empty the declared type is derived from value; otherwise typ
// is used as written, and value is printed with conversions that give it
// its own type whatever typ is.
func (p *Printer) Declare(name string, value interface{}, typ string) (string, error) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return "", errors.Errorf("cannot declare %s: value is untyped nil", name)
	}
	var imputedType reflect.Type
	if typ == "" {
		s := &state{p: p}
		typ = s.sprintType(v.Type())
		if s.err != nil {
			return "", s.err
		}
		imputedType = v.Type()
	}
	var buf bytes.Buffer
	if err := p.fprint(&buf, v, imputedType); err != nil {
		return "", err
	}
	keyword := "var"
	if isConstant(v) {
		keyword = "const"
	}
	return fmt.Sprintf("%s %s %s = %s", keyword, name, typ, buf.String()), nil
}

// isConstant reports whether v can be the value of a Go constant declaration.
func isConstant(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		return specialFloatString(v.Float()) == ""
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		return specialFloatString(real(c)) == "" && specialFloatString(imag(c)) == ""
	default:
		return isPrimitive(v.Kind())
	}
}

// ToString returns a declaration of name with the given value, for the package
// that defines value's type. Packages the source refers to are imported
// automatically. See Printer.Declare.
func ToString(name string, value interface{}, typ string) (string, error) {
	p := NewPrinter(packageOf(reflect.TypeOf(value)))
	p.SetAutoImport(true)
	return p.Declare(name, value, typ)
}

// ToFile writes the declaration returned by ToString to target, exactly as
// returned.
func ToFile(target, name string, value interface{}, typ string) error {
	s, err := ToString(name, value, typ)
	if err != nil {
		return err
	}
	if err := os.WriteFile(target, []byte(s), filePerm); err != nil {
		return errors.Wrapf(err, "writing %s", target)
	}
	return nil
}

// packageOf returns the path of the package that defines t, or of its element
// type for unnamed types like slices.
func packageOf(t reflect.Type) string {
	for t != nil {
		if t.Name() != "" {
			return t.PkgPath()
		}
		switch t.Kind() {
		case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
			t = t.Elem()
		default:
			return ""
		}
	}
	return ""
}

// File returns a formatted Go source file for package pkgName containing
// the given declarations. If pkgName is empty, the last element of the
// printer's package path is used. The file imports exactly the packages
// that the printed values refer to.
func (p *Printer) File(pkgName string, decls ...Decl) ([]byte, error) {
	if pkgName == "" {
		pkgName = path.Base(p.pkgPath)
	}
	p.used = map[string]bool{}
	var body bytes.Buffer
	for _, d := range decls {
		s, err := p.Declare(d.Name, d.Value, d.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "declaring %s", d.Name)
		}
		body.WriteString(s)
		body.WriteString("\n\n")
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s\n\npackage %s\n\n", GeneratedHeader, pkgName)
	if paths := p.usedImports(); len(paths) > 0 {
		buf.WriteString("import (\n")
		for _, ip := range paths {
			if id := p.imports[ip]; id != path.Base(ip) {
				fmt.Fprintf(&buf, "\t%s %q\n", id, ip)
			} else {
				fmt.Fprintf(&buf, "\t%q\n", ip)
			}
		}
		buf.WriteString(")\n\n")
	}
	buf.Write(body.Bytes())
	return formatSource(pkgName+"_generated.go", buf.Bytes())
}

// WriteFile writes the source returned by File to filename.
func (p *Printer) WriteFile(filename, pkgName string, decls ...Decl) error {
	src, err := p.File(pkgName, decls...)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, src, filePerm); err != nil {
		return errors.Wrapf(err, "writing %s", filename)
	}
	return nil
}

func (p *Printer) usedImports() []string {
	var paths []string
	for _, ip := range slices.Sorted(maps.Keys(p.used)) {
		if ip != p.pkgPath {
			paths = append(paths, ip)
		}
	}
	return paths
}

func formatSource(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated source")
	}
	out, err = gofumpt.Source(out, gofumpt.Options{})
	if err != nil {
		return nil, errors.Wrap(err, "formatting generated source")
	}
	return out, nil
}
