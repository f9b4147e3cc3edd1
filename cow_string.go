// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import (
	"iter"
	"strings"
)

// AppendString appends s to the text held by c.
//
// If c is empty it becomes a borrowed Cow holding s, and nothing is copied.
// If c is borrowed and s is not empty, c's text is copied once into owned
// storage large enough for both, and s is appended to it.
func AppendString[S ~string](c *Cow[S], s S) {
	cur := c.Get()
	switch {
	case len(cur) == 0:
		*c = Text(s)
	case len(s) > 0:
		if c.IsBorrowed() {
			*c = Owned(concat(cur, s))
			return
		}
		*c.ToMut() += s
	}
}

// AppendCow appends the text of rhs to c. It follows the same policy as
// AppendString, except that an empty c takes over rhs, variant and all.
func AppendCow[S ~string](c *Cow[S], rhs Cow[S]) {
	cur, s := c.Get(), rhs.Get()
	switch {
	case len(cur) == 0:
		*c = rhs
	case len(s) > 0:
		if c.IsBorrowed() {
			*c = Owned(concat(cur, s))
			return
		}
		*c.ToMut() += s
	}
}

// Concat returns c with s appended, as by AppendString.
func Concat[S ~string](c Cow[S], s S) Cow[S] {
	AppendString(&c, s)
	return c
}

// ConcatCow returns c with rhs appended, as by AppendCow.
func ConcatCow[S ~string](c, rhs Cow[S]) Cow[S] {
	AppendCow(&c, rhs)
	return c
}

// Extend writes the text of every Cow in seq to dst.
func Extend[S ~string](dst *strings.Builder, seq iter.Seq[Cow[S]]) {
	for c := range seq {
		dst.WriteString(string(c.Get()))
	}
}

func concat[S ~string](a, b S) S {
	var sb strings.Builder
	sb.Grow(len(a) + len(b))
	sb.WriteString(string(a))
	sb.WriteString(string(b))
	return S(sb.String())
}
