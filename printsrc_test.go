// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

package uneval

import (
	"math"
	"net"
	"strings"
	"testing"
	"text/template"
	"time"
)

type Profile struct {
	Frozen  bool
	Weights map[string]Float
}

type framed struct {
	A int
	Nested
}

type Nested struct {
	B int16
}

type sample struct {
	Rate, scale float64
}

type (
	Bool    bool
	String  string
	Int     int16
	Uint    uint8
	Float   float32
	Complex complex64
)

type Scalars struct {
	B Bool
	S String
	I Int
	U Uint
	F Float
	C Complex
}

type (
	Coord struct {
		x, y float32
	}

	PCoord *Coord
)

type link struct {
	v    int
	next *link
}

type Counts map[string]int

type Box[T any] struct {
	V T
}

// Entry is a record of generated data whose fields are Cows.
type Entry struct {
	Key  Cow[string]
	Vals Cow[[]int]
}

// Sealed keeps its data in an unexported Cow.
type Sealed struct {
	Name string
	data Cow[[]int]
}

type ring struct {
	Next *Cow[ring]
}

func TestPrint(t *testing.T) {
	p := NewPrinter(importPath)
	p.RegisterImport("net")
	p.RegisterImport("time")
	p.RegisterNamedImport("text/template", "ttemp")
	i8 := int8(7)
	fn := Float(math.NaN())
	fn32 := float32(math.NaN())
	for _, test := range []struct {
		in   interface{}
		want string
	}{
		// simple primitive values
		{nil, "nil"},
		{"a\tb", `"a\tb"`},
		{true, "true"},
		{Bool(true), "Bool(true)"},
		{[]Bool{true}, "[]Bool{true}"},

		// integers
		{5, "5"},
		{-87, "-87"},
		{int32(3), "int32(3)"},
		{uint(0), "uint(0)"},
		{uint8(255), "uint8(255)"},
		{uint64(math.MaxUint64), "uint64(18446744073709551615)"},
		{[]uint64{1, 2, 3}, "[]uint64{1, 2, 3}"},
		{
			// Constant literals as field values of struct literals are implicitly converted.
			Scalars{B: true, S: "ok", I: 1, U: 2, F: 3, C: 4},
			`Scalars{B: true,S: "ok",I: 1,U: 2,F: 3,C: (4+0i),}`,
		},

		// floating-point
		{3.2, "3.2"},
		{2.0, "2.0"},
		{[]interface{}{2.0, 1e6}, "[]interface{}{2.0,1e+06,}"},
		{[]float64{2.0}, "[]float64{2}"},
		{float32(1), "float32(1)"},
		{math.NaN(), "math.NaN()"},
		{math.Inf(-3), "math.Inf(-1)"},
		{[]float32{fn32}, "[]float32{float32(math.NaN())}"},

		// complex
		{complex(1, -1), "(1-1i)"},
		{complex(float32(1), float32(-1)), "complex64((1-1i))"},
		{[]Complex{complex(1, -2)}, "[]Complex{(1-2i)}"},
		{complex(1, math.Inf(1)), "complex(1.0, math.Inf(1))"},
		{
			[]Complex{Complex(complex(math.NaN(), math.Inf(1)))},
			"[]Complex{Complex(complex(math.NaN(), math.Inf(1)))}",
		},

		// pointers
		{(*int)(nil), "(*int)(nil)"},
		{&i8, "func() *int8 { var x int8 = 7; return &x }()"},
		{&fn, "func() *Float { var x Float = Float(math.NaN()); return &x }()"},
		{[]*int8{&i8}, "[]*int8{func() *int8 { var x int8 = 7; return &x }(),}"},
		{[]*[]int{{1}}, "[]*[]int{{1},}"},

		// slices and arrays
		{[]int(nil), "[]int(nil)"},
		{[]int{}, "[]int{}"},
		{[]int{1, 2, 3}, "[]int{1, 2, 3}"},
		{[]Float{2.3}, "[]Float{2.3}"},
		{[1]bool{true}, "[1]bool{true}"},
		{[]string{"a", "b"}, `[]string{"a","b",}`},

		// maps
		{map[string]int(nil), "map[string]int(nil)"},
		{map[string]int{"a": 1}, `map[string]int{"a": 1}`},
		{map[string]int{"a": 1, "b": 2}, `map[string]int{"a": 1,"b": 2,}`},
		{
			Profile{true, map[string]Float{"x": 0.5}},
			`Profile{Frozen: true,Weights: map[string]Float{"x": 0.5},}`,
		},
		{
			Profile{false, map[string]Float{"x": 0.5}},
			`Profile{Weights: map[string]Float{"x": 0.5}}`,
		},
		{Counts{"a": 1}, `Counts{"a": 1}`},
		{map[int][]int{1: {2}, 3: {4, 5, 6}}, "map[int][]int{1: {2},3: {4, 5, 6},}"},
		{map[bool]int{true: 1, false: 2}, "map[bool]int{false: 2, true: 1}"},
		{map[uint]bool{2: true, 1: false}, "map[uint]bool{1: false, 2: true}"},
		{map[float32]int{1.0: 1, -1.0: -1}, "map[float32]int{-1: -1, 1: 1}"},

		// structs
		{(*Nested)(nil), "(*Nested)(nil)"},
		{&Nested{B: 3}, "&Nested{B: 3}"},
		{framed{A: 1, Nested: Nested{B: 2}}, "framed{A: 1,Nested: Nested{B: 2},}"},
		{[]*Nested{{B: 1}, nil}, "[]*Nested{{B: 1},nil,}"},
		{sample{1, 2}, "sample{Rate: 1, scale: 2}"},
		{map[Nested]Nested{{B: 1}: {B: 2}}, "map[Nested]Nested{{B: 1}: {B: 2}}"},
		{
			[]interface{}{float32(1), fn32, map[string]int(nil)},
			"[]interface{}{float32(1),float32(math.NaN()),map[string]int(nil),}",
		},
		{
			&link{1, &link{2, &link{v: 3}}},
			"&link{v: 1,next: &link{v: 2,next: &link{v: 3},},}",
		},

		// Cows
		{Owned(1), "Borrowed(Ref[int](1))"},
		{Owned(uint16(7)), "Borrowed(Ref[uint16](7))"},
		{Entry{Key: Text("k")}, `Entry{Key: Text("k")}`},
		{Entry{Vals: FromSlice([]int(nil))}, "Entry{Vals: Borrowed(Ref[[]int](nil))}"},
		{
			// Cows are never small.
			Entry{Key: Text("k"), Vals: Owned([]int{1, 2})},
			`Entry{Key: Text("k"),Vals: Borrowed(&[]int{1, 2}),}`,
		},
		{map[string]Cow[[]int]{"a": Owned([]int{1})}, `map[string]Cow[[]int]{"a": Borrowed(&[]int{1})}`},
		{[]interface{}{Owned(1), Text("s")}, `[]interface{}{Borrowed(Ref[int](1)),Text("s"),}`},
		{Ref(Owned(2)), "func() *Cow[int] { var x Cow[int] = Borrowed(Ref[int](2)); return &x }()"},
		{[]Cow[int]{Owned(1)}, "[]Cow[int]{Borrowed(Ref[int](1)),}"},
		{Sealed{Name: "x", data: Owned([]int{1})}, `Sealed{Name: "x",data: Borrowed(&[]int{1}),}`},

		// generics
		{Box[Nested]{V: Nested{B: 1}}, "Box[Nested]{V: Nested{B: 1}}"},
		{[]Box[int]{{V: 1}}, "[]Box[int]{{V: 1},}"},
		{Box[time.Time]{}, "Box[time.Time]{}"},
		{Box[Cow[string]]{V: Text("b")}, `Box[Cow[string]]{V: Text("b")}`},

		// imports
		// (net.Flags is a uint)
		{net.Flags(17), "net.Flags(17)"},
		{Owned(net.Flags(1)), "Borrowed(Ref[net.Flags](1))"},
		// named import
		{template.Template{}, "ttemp.Template{}"},

		// elision examples from the Go spec
		{[...]Coord{{1.5, -3.5}, {0, 0}}, "[2]Coord{{x: 1.5, y: -3.5},{},}"},
		{[][]Coord{{{0, 1}, {1, 2}}}, "[][]Coord{{{y: 1},{x: 1, y: 2},},}"},
		{map[string]Coord{"orig": {0, 0}}, `map[string]Coord{"orig": {}}`},
		{map[Coord]string{{0, 0}: "orig"}, `map[Coord]string{{}: "orig"}`},
		{[2]PCoord{{1.5, -3.5}, {}}, "[2]PCoord{{x: 1.5, y: -3.5},{},}"},

		// time.Time
		{
			time.Date(2008, 4, 23, 9, 56, 23, 29, time.Local),
			"time.Date(2008, time.April, 23, 9, 56, 23, 29, time.Local)",
		},
		{
			Owned(time.Date(2008, 4, 23, 9, 56, 23, 29, time.UTC)),
			"Borrowed(Ref[time.Time](time.Date(2008, time.April, 23, 9, 56, 23, 29, time.UTC)))",
		},
	} {
		got, err := p.Sprint(test.in)
		if err != nil {
			t.Fatal(err)
		}
		got = strings.NewReplacer("\n", "", "\t", "").Replace(got)
		if got != test.want {
			t.Errorf("%#v (%[1]T):\ngot\n\t%s\nwant\n\t%s", test.in, got, test.want)
		}
	}
}

func TestPrintOutsidePackage(t *testing.T) {
	p := NewPrinter("example.com/tables")
	for _, test := range []struct {
		in   interface{}
		want string
	}{
		// Unexported fields can't be written outside their package, Cows included.
		{Sealed{Name: "x", data: Owned([]int{1})}, `uneval.Sealed{Name: "x"}`},
		{Entry{Key: Text("k")}, `uneval.Entry{Key: uneval.Text("k")}`},
		{map[string]Cow[int]{"n": Owned(1)}, `map[string]uneval.Cow[int]{"n": uneval.Borrowed(uneval.Ref[int](1))}`},
		{Box[Cow[string]]{V: Text("b")}, `uneval.Box[uneval.Cow[string]]{V: uneval.Text("b")}`},
		{Scalars{U: 200}, "uneval.Scalars{U: 200}"},
	} {
		got, err := p.Sprint(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%#v (%[1]T):\ngot\n\t%s\nwant\n\t%s", test.in, got, test.want)
		}
	}
}

func TestPrintVerticalWhitespace(t *testing.T) {
	p := NewPrinter(importPath)
	for _, test := range []struct {
		in   interface{}
		want string
	}{
		{[]int{1, 2}, "[]int{1, 2}"},
		{[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, "[]int{\n\t1,\n\t2,\n\t3,\n\t4,\n\t5,\n\t6,\n\t7,\n\t8,\n\t9,\n\t10,\n\t11,\n}"},
		{[]string{"a", "b"}, "[]string{\n\t\"a\",\n\t\"b\",\n}"},
		{map[string]int{"a": 1, "b": 2}, "map[string]int{\n\t\"a\": 1,\n\t\"b\": 2,\n}"},
		{
			Profile{true, map[string]Float{"x": 0.5}},
			"Profile{\n\tFrozen: true,\n\tWeights: map[string]Float{\"x\": 0.5},\n}",
		},
		{
			Profile{false, map[string]Float{"x": 0.5}},
			"Profile{Weights: map[string]Float{\"x\": 0.5}}",
		},
		{framed{A: 1, Nested: Nested{B: 2}}, "framed{\n\tA: 1,\n\tNested: Nested{B: 2},\n}"},
		{[]*Nested{{B: 1}}, "[]*Nested{\n\t{B: 1},\n}"},
		{map[int][]int{1: {2}, 3: {4, 5, 6}}, "map[int][]int{\n\t1: {2},\n\t3: {4, 5, 6},\n}"},
		{
			Entry{Key: Text("k"), Vals: Owned([]int{1, 2})},
			"Entry{\n\tKey: Text(\"k\"),\n\tVals: Borrowed(&[]int{1, 2}),\n}",
		},
		{Owned([]string{"a"}), "Borrowed(&[]string{\n\t\"a\",\n})"},
		{Owned([]int{1, 2}), "Borrowed(&[]int{1, 2})"},
	} {
		got, err := p.Sprint(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%#v (%[1]T):\ngot\n\t%s\nwant\n\t%s", test.in, got, test.want)
		}
	}
}

func TestPrintErrors(t *testing.T) {
	p := NewPrinter(importPath)
	p.RegisterImport("time")
	l := &link{v: 1}
	l.next = l
	r := &Cow[ring]{}
	*r = Owned(ring{Next: r})

	for _, test := range []struct {
		in   interface{}
		want string
	}{
		{net.Flags(3), "unknown package"},
		{Owned(net.Flags(3)), "unknown package"},
		{struct{ X int }{3}, "unnamed type"},
		{Owned(struct{ X int }{3}), "unnamed type"},
		{func() {}, "cannot print"},
		{make(chan int), "cannot print"},
		{Owned(make(chan int)), "unnamed type"},
		{l, "depth exceeded"},
		{r, "depth exceeded"},
		{time.Date(2008, 4, 23, 9, 56, 23, 29, time.FixedZone("foo", 17)), "location"},
	} {
		_, err := p.Sprint(test.in)
		if err == nil {
			t.Errorf("%T: got nil, want err", test.in)
		} else if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%T: got %q, looking for %q", test.in, err, test.want)
		}
	}
}
