// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

// Package tables holds data generated by uneval from values built in its
// tests. Compiling it checks that printed Cows and the types around them are
// valid Go; its tests check that the compiled values equal their sources.
package tables

//go:generate go test -run TestGeneratedFileIsCurrent -update

import "github.com/jba/uneval"

// An Entry is a keyed list of integers.
type Entry struct {
	Key  uneval.Cow[string]
	Vals uneval.Cow[[]int]
}
