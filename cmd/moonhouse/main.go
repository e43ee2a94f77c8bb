// Command moonhouse computes which house a full moon falls in from the
// command line, using the same reference tables as the service.
//
// Usage:
//
//	moonhouse compute --system sidereal --rising leo --date 2025-01-13
//	moonhouse dates
//	moonhouse next
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
