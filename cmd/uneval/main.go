// Copyright 2021 by Jonathan Amsterdam. All rights reserved.

// Command uneval turns YAML or JSON data into Go declarations, for use in
// go:generate steps.
package main

import (
	"os"

	"github.com/jba/uneval/cmd/uneval/cmd"
)

func main() {
	if err := cmd.Root.Execute(); err != nil {
		os.Exit(1)
	}
}
