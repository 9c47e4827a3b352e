// Command validate-data checks a countries dataset for integrity problems.
//
// Usage:
//
//	go run ./cmd/validate-data            # validate the embedded dataset
//	go run ./cmd/validate-data ./my-data  # validate ./my-data/countries.json
//
// Run it after editing countries-data/countries.json and before committing.
package main

import (
	"fmt"
	"os"

	"github.com/andreiashu/countries"
)

func main() {
	var opts []countries.Option
	source := "embedded dataset"
	if len(os.Args) > 1 {
		source = os.Args[1]
		opts = append(opts, countries.WithDataFS(os.DirFS(source)))
	}

	fmt.Printf("Validating %s...\n", source)

	if err := countries.ValidateData(os.Stdout, opts...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Dataset is valid.")
}
