// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"unicode"

	"github.com/jba/uneval"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// loadData decodes the YAML or JSON in filename, or standard input if
// filename is "-".
func loadData(filename string, stdin io.Reader) (interface{}, error) {
	var (
		data []byte
		err  error
	)
	if filename == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", filename)
	}
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, errors.Wrapf(err, "decoding %s", filename)
	}
	return v, nil
}

// normalize gives decoded data Go types: a sequence whose elements all have
// the same type becomes a slice of that type. If cow is true, strings and
// sequences are wrapped in owned Cows.
func normalize(v interface{}, cow bool) interface{} {
	switch v := v.(type) {
	case string:
		if cow {
			return uneval.Owned(v)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = normalize(e, cow)
		}
		return typedSlice(v, cow)
	case map[string]interface{}:
		for k, e := range v {
			v[k] = normalize(e, cow)
		}
		return v
	case map[interface{}]interface{}:
		for k, e := range v {
			v[k] = normalize(e, cow)
		}
		return v
	default:
		return v
	}
}

func typedSlice(vs []interface{}, cow bool) interface{} {
	if len(vs) > 0 && homogeneous(vs) {
		switch vs[0].(type) {
		case int:
			return sliceOf[int](vs, cow)
		case float64:
			return sliceOf[float64](vs, cow)
		case bool:
			return sliceOf[bool](vs, cow)
		case string:
			return sliceOf[string](vs, cow)
		case []int:
			return sliceOf[[]int](vs, cow)
		case []float64:
			return sliceOf[[]float64](vs, cow)
		case []string:
			return sliceOf[[]string](vs, cow)
		case uneval.Cow[string]:
			return sliceOf[uneval.Cow[string]](vs, cow)
		case uneval.Cow[[]int]:
			return sliceOf[uneval.Cow[[]int]](vs, cow)
		case uneval.Cow[[]float64]:
			return sliceOf[uneval.Cow[[]float64]](vs, cow)
		case uneval.Cow[[]uneval.Cow[string]]:
			return sliceOf[uneval.Cow[[]uneval.Cow[string]]](vs, cow)
		}
	}
	if cow {
		return uneval.Owned(vs)
	}
	return vs
}

func homogeneous(vs []interface{}) bool {
	t := reflect.TypeOf(vs[0])
	for _, v := range vs[1:] {
		if reflect.TypeOf(v) != t {
			return false
		}
	}
	return true
}

func sliceOf[E any](vs []interface{}, cow bool) interface{} {
	s := make([]E, len(vs))
	for i, v := range vs {
		s[i] = v.(E)
	}
	if cow {
		return uneval.Owned(s)
	}
	return s
}

var title = cases.Title(language.Und, cases.NoLower)

// declName derives an exported Go identifier from the base name of filename:
// "fft_table.yaml" becomes "FftTable".
func declName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	words := strings.FieldsFunc(base, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, w := range words {
		b.WriteString(title.String(w))
	}
	name := b.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "Data" + name
	}
	return name
}
