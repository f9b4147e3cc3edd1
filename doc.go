// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

/*
Package uneval prints Go values as Go source, so that data computed once,
typically by a go:generate step, can be compiled into a program instead of
being recomputed or loaded at run time.
It strives to render legal Go source code, and returns
an error when it detects that it cannot.

To generate a declaration for a slice of ints in package "numbers",
write

	p := uneval.NewPrinter("example.com/numbers")
	src, err := p.Declare("Primes", []int{2, 3, 5}, "")
	if err != nil {
		...
	}

which produces

	var Primes []int = []int{2, 3, 5}

Here the package which will contain the generated source code doesn't matter,
but it is needed to print non-primitive named types. Printer.File and
Printer.WriteFile produce a complete, formatted file with the imports the
values need. ToString and ToFile are shortcuts for a single declaration.

# Clone-on-write values

Cow is a clone-on-write container: it borrows data owned elsewhere or owns
its data, and copies borrowed data only when mutable access is requested with
ToMut. Reading never depends on the variant, and neither do Equal, Compare
and Hash.

A Cow is always printed as if it were borrowed, because generated source
describes data embedded in the program:

	uneval.Owned(uint64(1))        uneval.Borrowed(uneval.Ref[uint64](1))
	uneval.Owned("Hello")          uneval.Text("Hello")
	uneval.Owned([]uint64{1, 2})   uneval.Borrowed(&[]uint64{1, 2})

so a table built at generation time with owned data, such as a
Cow[[]Cow[[]int]], becomes a nest of borrowed slices in the generated code.
The %#v verb of the fmt package prints a Cow the same way.

# Registering Imports

Source for a named type defined outside the generated package is qualified
with an identifier for its package. Register it with RegisterImport, or
RegisterNamedImport to choose the identifier. This package and "math" are
registered by NewPrinter. With SetAutoImport(true), unregistered packages are
registered as they are encountered.

# Registering Custom Printers

A custom printer for time.Time is registered by default. It prints a time.Time
by printing a call to time.Date. An error is returned if the time's location is
not Local or UTC, since those are the only locations for which source
expressions can be produced.

The output of custom printers is not checked. A Cow holding a value with a
custom printer is printed with Ref.

# Known Issues

Maps with multiple NaN keys are not handled.

uneval makes an effort to sort map keys in order to generate deterministic
output. But if it can't sort the keys it prints the map anyway. The output
will be valid Go but the order of the keys will change from run to run.

The reflect package provides no way to distinguish a type defined inside a
function from one at top level. So uneval will print expressions containing
names for those types which will not compile.

Sharing relationships are not preserved. For example, if two pointers in the input
point to the same value, they will point to different values in the output.

Cycles are detected by the crude heuristic of limiting recursion depth. Cycles
cause printing to fail, and cloning or comparing a Cow to panic.

Unexported fields of structs defined outside the generated package are ignored,
because there is no way to set them (without using unsafe code). So important
state may fail to be printed. You must register custom printers for such structs.
*/
package uneval
