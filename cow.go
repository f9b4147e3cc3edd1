// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import (
	"fmt"
	"hash/maphash"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// A Cow is a clone-on-write value. It either borrows data owned by someone
// else, or owns its data. Reads see the same value in both cases; the first
// request for mutable access copies borrowed data into owned storage.
//
// The zero Cow is owned and holds the zero value of T.
//
// When printed as source by a Printer, a Cow is always written in its
// borrowed form, whichever variant it holds. See the package documentation.
type Cow[T any] struct {
	ref   *T // non-nil iff borrowed
	owned T
}

// Borrowed returns a Cow that refers to *ref without copying it.
// It panics if ref is nil.
func Borrowed[T any](ref *T) Cow[T] {
	if ref == nil {
		panic("uneval: Borrowed called with nil reference")
	}
	return Cow[T]{ref: ref}
}

// Owned returns a Cow that owns v.
func Owned[T any](v T) Cow[T] {
	return Cow[T]{owned: v}
}

// Ref returns a pointer to a copy of v. Generated code uses it to borrow
// values that have no addressable literal form, like numbers.
func Ref[T any](v T) *T {
	return &v
}

// Text returns a Cow borrowing s. A string's bytes are never copied by
// holding it, so text is always cheap to borrow.
func Text[S ~string](s S) Cow[S] {
	return Cow[S]{ref: &s}
}

// FromSlice returns a Cow borrowing the elements of s.
func FromSlice[S ~[]E, E any](s S) Cow[S] {
	return Cow[S]{ref: &s}
}

// Collect returns a Cow owning the elements of seq.
func Collect[E any](seq iter.Seq[E]) Cow[[]E] {
	return Owned(slices.Collect(seq))
}

// CollectString returns a Cow owning the concatenation of the strings of seq.
func CollectString(seq iter.Seq[string]) Cow[string] {
	var b strings.Builder
	for s := range seq {
		b.WriteString(s)
	}
	return Owned(b.String())
}

// CollectRunes returns a Cow owning the string made of the runes of seq.
func CollectRunes(seq iter.Seq[rune]) Cow[string] {
	var b strings.Builder
	for r := range seq {
		b.WriteRune(r)
	}
	return Owned(b.String())
}

// IsBorrowed reports whether c refers to data it does not own.
func (c Cow[T]) IsBorrowed() bool { return c.ref != nil }

// IsOwned reports whether c owns its data.
func (c Cow[T]) IsOwned() bool { return c.ref == nil }

// Get returns the value c holds. The result must be treated as read-only:
// for reference kinds like slices and maps it shares storage with c, and
// with the borrowed data's owner.
func (c Cow[T]) Get() T {
	if c.ref != nil {
		return *c.ref
	}
	return c.owned
}

// ToMut returns a pointer to the data owned by c. If c is borrowed, the data
// is cloned once and c becomes owned; if c is already owned nothing is copied.
func (c *Cow[T]) ToMut() *T {
	if c.ref != nil {
		*c = Cow[T]{owned: cloneOf(*c.ref)}
	}
	return &c.owned
}

// IntoOwned returns owned data equal to c's value. A borrowed Cow is cloned.
// An owned Cow hands over its data without copying, so c should not be used
// for mutation afterwards.
func (c Cow[T]) IntoOwned() T {
	if c.ref != nil {
		return cloneOf(*c.ref)
	}
	return c.owned
}

// Clone returns a copy of c. A borrowed Cow shares its reference with the
// copy; an owned Cow's data is cloned.
func (c Cow[T]) Clone() Cow[T] {
	if c.ref != nil {
		return c
	}
	return Cow[T]{owned: cloneOf(c.owned)}
}

// Equal reports whether c and o hold structurally equal values, regardless
// of which variants they are.
func (c Cow[T]) Equal(o Cow[T]) bool {
	return deepEqual(c.reflectTarget(), o.reflectTarget(), 0)
}

// Compare orders c and o by their values, returning -1, 0 or +1.
// It panics if T contains values that have no order, such as maps.
func (c Cow[T]) Compare(o Cow[T]) int {
	return compareValues(c.reflectTarget(), o.reflectTarget(), 0)
}

// Hash writes c's value to h. Equal Cows write the same bytes.
func (c Cow[T]) Hash(h *maphash.Hash) {
	hashValue(h, c.reflectTarget(), 0)
}

// String formats c's value with fmt's default verb.
func (c Cow[T]) String() string {
	return fmt.Sprint(c.Get())
}

// GoString returns the source form of c, as printed by a Printer for a
// package other than uneval. It makes %#v print source.
func (c Cow[T]) GoString() string {
	p := NewPrinter("")
	p.SetAutoImport(true)
	s, err := p.Sprint(c)
	if err != nil {
		return fmt.Sprintf("uneval.Cow[%s](/* %v */)", reflect.TypeFor[T](), err)
	}
	return s
}

// reflectTarget returns c's value as an interfaceable reflect.Value of type T.
func (c Cow[T]) reflectTarget() reflect.Value {
	if c.ref != nil {
		return reflect.ValueOf(c.ref).Elem()
	}
	return reflect.ValueOf(&c.owned).Elem()
}

// cow is implemented by every instantiation of Cow.
type cow interface {
	reflectTarget() reflect.Value
}

var cowType = reflect.TypeFor[cow]()

func isCow(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.Implements(cowType)
}

// cowTarget returns the value held by the Cow v.
// v need not be interfaceable: Cows reached through unexported struct fields
// are read field by field.
func cowTarget(v reflect.Value) reflect.Value {
	if v.CanInterface() {
		return v.Interface().(cow).reflectTarget()
	}
	if ref := v.Field(0); !ref.IsNil() {
		return ref.Elem()
	}
	return v.Field(1)
}
