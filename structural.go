// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
	"unsafe"
)

// The functions in this file see through Cows: a Cow is treated as the value
// it holds, so borrowed and owned Cows with equal data are interchangeable.

// cloneOf returns a deep copy of v.
func cloneOf[T any](v T) T {
	var out T
	reflect.ValueOf(&out).Elem().Set(deepCopy(reflect.ValueOf(&v).Elem(), 0))
	return out
}

// deepCopy returns a copy of v that shares no mutable storage with it.
// A value with a method Clone() returning its own type is copied by calling
// that method. Unexported struct fields are copied shallowly along with their
// struct, except Cows, which are cloned.
func deepCopy(v reflect.Value, depth int) reflect.Value {
	if depth > maxDepth {
		panic(fmt.Sprintf("uneval: cannot clone %s: max depth exceeded (probable circularity)", v.Type()))
	}
	depth++
	if v.Kind() != reflect.Interface && !(v.Kind() == reflect.Ptr && v.IsNil()) && v.CanInterface() {
		if m := v.MethodByName("Clone"); m.IsValid() {
			mt := m.Type()
			if mt.NumIn() == 0 && mt.NumOut() == 1 && mt.Out(0) == v.Type() {
				return m.Call(nil)[0]
			}
		}
	}
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return v
		}
		p := reflect.New(v.Type().Elem())
		p.Elem().Set(deepCopy(v.Elem(), depth))
		return p
	case reflect.Interface:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type()).Elem()
		out.Set(deepCopy(v.Elem(), depth))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i), depth))
		}
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i), depth))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value(), depth))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := 0; i < v.NumField(); i++ {
			f := out.Field(i)
			switch {
			case f.CanSet():
				f.Set(deepCopy(v.Field(i), depth))
			case isCow(f.Type()):
				// Owned data in an unexported Cow must not be shared with v.
				f = reflect.NewAt(f.Type(), unsafe.Pointer(f.UnsafeAddr())).Elem()
				f.Set(deepCopy(f, depth))
			}
		}
		return out
	default:
		return v
	}
}

func deepEqual(x, y reflect.Value, depth int) bool {
	if depth > maxDepth {
		panic("uneval: cannot compare values: max depth exceeded (probable circularity)")
	}
	depth++
	if !x.IsValid() || !y.IsValid() {
		return x.IsValid() == y.IsValid()
	}
	if x.Type() != y.Type() {
		return false
	}
	if isCow(x.Type()) {
		xt := cowTarget(x)
		yt := cowTarget(y)
		return deepEqual(xt, yt, depth)
	}
	switch x.Kind() {
	case reflect.Bool:
		return x.Bool() == y.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return x.Int() == y.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return x.Uint() == y.Uint()
	case reflect.Float32, reflect.Float64:
		return x.Float() == y.Float()
	case reflect.Complex64, reflect.Complex128:
		return x.Complex() == y.Complex()
	case reflect.String:
		return x.String() == y.String()
	case reflect.Ptr, reflect.Interface:
		if x.IsNil() || y.IsNil() {
			return x.IsNil() == y.IsNil()
		}
		return deepEqual(x.Elem(), y.Elem(), depth)
	case reflect.Slice, reflect.Array:
		if x.Kind() == reflect.Slice && x.IsNil() != y.IsNil() {
			return false
		}
		if x.Len() != y.Len() {
			return false
		}
		for i := 0; i < x.Len(); i++ {
			if !deepEqual(x.Index(i), y.Index(i), depth) {
				return false
			}
		}
		return true
	case reflect.Map:
		if x.IsNil() != y.IsNil() || x.Len() != y.Len() {
			return false
		}
		iter := x.MapRange()
		for iter.Next() {
			yv := y.MapIndex(iter.Key())
			if !yv.IsValid() || !deepEqual(iter.Value(), yv, depth) {
				return false
			}
		}
		return true
	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if !deepEqual(x.Field(i), y.Field(i), depth) {
				return false
			}
		}
		return true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		// Like reflect.DeepEqual: only nil funcs are equal.
		if x.Kind() == reflect.Func {
			return x.IsNil() && y.IsNil()
		}
		return x.Pointer() == y.Pointer()
	default:
		panic("bad kind")
	}
}

// compareValues orders x and y, which must have the same type.
func compareValues(x, y reflect.Value, depth int) int {
	if depth > maxDepth {
		panic("uneval: cannot compare values: max depth exceeded (probable circularity)")
	}
	depth++
	if isCow(x.Type()) {
		xt := cowTarget(x)
		yt := cowTarget(y)
		return compareValues(xt, yt, depth)
	}
	switch x.Kind() {
	case reflect.Bool:
		return cmp.Compare(b2i(x.Bool()), b2i(y.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(x.Int(), y.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(x.Uint(), y.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(x.Float(), y.Float())
	case reflect.String:
		return cmp.Compare(x.String(), y.String())
	case reflect.Ptr, reflect.Interface:
		switch {
		case x.IsNil() && y.IsNil():
			return 0
		case x.IsNil():
			return -1
		case y.IsNil():
			return +1
		}
		xe, ye := x.Elem(), y.Elem()
		if xe.Type() != ye.Type() {
			panic(fmt.Sprintf("uneval: cannot order %s and %s", xe.Type(), ye.Type()))
		}
		return compareValues(xe, ye, depth)
	case reflect.Slice, reflect.Array:
		n := min(x.Len(), y.Len())
		for i := 0; i < n; i++ {
			if c := compareValues(x.Index(i), y.Index(i), depth); c != 0 {
				return c
			}
		}
		return cmp.Compare(x.Len(), y.Len())
	case reflect.Struct:
		for i := 0; i < x.NumField(); i++ {
			if c := compareValues(x.Field(i), y.Field(i), depth); c != 0 {
				return c
			}
		}
		return 0
	default:
		panic(fmt.Sprintf("uneval: values of type %s are not ordered", x.Type()))
	}
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// hashValue writes v to h so that deepEqual values write equal bytes.
func hashValue(h *maphash.Hash, v reflect.Value, depth int) {
	if depth > maxDepth {
		panic("uneval: cannot hash value: max depth exceeded (probable circularity)")
	}
	depth++
	if !v.IsValid() {
		h.WriteByte(0)
		return
	}
	if isCow(v.Type()) {
		t := cowTarget(v)
		hashValue(h, t, depth)
		return
	}
	h.WriteByte(byte(v.Kind()))
	switch v.Kind() {
	case reflect.Bool:
		h.WriteByte(byte(b2i(v.Bool())))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint64(h, uint64(v.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint64(h, v.Uint())
	case reflect.Float32, reflect.Float64:
		writeFloat(h, v.Float())
	case reflect.Complex64, reflect.Complex128:
		c := v.Complex()
		writeFloat(h, real(c))
		writeFloat(h, imag(c))
	case reflect.String:
		h.WriteString(v.String())
		h.WriteByte(0)
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			h.WriteByte(0)
			return
		}
		h.WriteByte(1)
		if v.Kind() == reflect.Interface {
			h.WriteString(v.Elem().Type().String())
		}
		hashValue(h, v.Elem(), depth)
	case reflect.Slice, reflect.Array:
		writeUint64(h, uint64(v.Len()))
		for i := 0; i < v.Len(); i++ {
			hashValue(h, v.Index(i), depth)
		}
	case reflect.Map:
		// Entries are hashed separately and summed, so iteration order
		// does not matter.
		var sum uint64
		iter := v.MapRange()
		for iter.Next() {
			var eh maphash.Hash
			eh.SetSeed(h.Seed())
			hashValue(&eh, iter.Key(), depth)
			hashValue(&eh, iter.Value(), depth)
			sum += eh.Sum64()
		}
		writeUint64(h, uint64(v.Len()))
		writeUint64(h, sum)
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			hashValue(h, v.Field(i), depth)
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		writeUint64(h, uint64(v.Pointer()))
	}
}

func writeUint64(h *maphash.Hash, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	h.Write(buf[:])
}

func writeFloat(h *maphash.Hash, f float64) {
	if f == 0 {
		f = 0 // -0 == +0
	}
	writeUint64(h, math.Float64bits(f))
}
