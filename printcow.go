// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import "reflect"

// printCow prints a Cow as a call that borrows its value, whether the Cow
// borrows or owns it. Generated source describes data embedded in the
// program, so it never needs an owned allocation.
//
// Text is printed as Text("..."). Values with a composite literal are
// printed as Borrowed(&T{...}); everything else as Borrowed(Ref[T](...)).
func (s *state) printCow(v reflect.Value) {
	target := cowTarget(v)
	t := target.Type()
	switch {
	case t.Kind() == reflect.String && s.p.customPrinters[t] == nil:
		text := s.sprintQualified(importPath, "Text")
		s.printf("%s(%s)", text, s.rsprint(target, nil, false))
	case s.hasAddressableLiteral(target):
		borrowed := s.sprintQualified(importPath, "Borrowed")
		s.printf("%s(&%s)", borrowed, s.rsprint(target, nil, false))
	default:
		borrowed := s.sprintQualified(importPath, "Borrowed")
		ref := s.sprintQualified(importPath, "Ref")
		s.printf("%s(%s[%s](%s))", borrowed, ref, s.sprintType(t), s.rsprint(target, t, false))
	}
}

// hasAddressableLiteral reports whether v prints as a composite literal,
// whose address can be taken with &.
func (s *state) hasAddressableLiteral(v reflect.Value) bool {
	t := v.Type()
	if isCow(t) || s.p.customPrinters[t] != nil {
		return false
	}
	switch t.Kind() {
	case reflect.Array, reflect.Struct:
		return true
	case reflect.Slice, reflect.Map:
		return !v.IsNil()
	default:
		return false
	}
}
