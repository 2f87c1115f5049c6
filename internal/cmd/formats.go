package cmd

import (
	"fmt"
	"strings"

	"tally/internal/format"
)

// FormatsCmd lists the serialization formats usable with --output and --input
type FormatsCmd struct{}

// Run executes the formats command
func (f *FormatsCmd) Run() error {
	fmt.Printf("Supported formats: %s\n", strings.Join(format.Supported(), ", "))
	if missing := format.NotSupported(); len(missing) > 0 {
		fmt.Printf("Not compiled in: %s\n", strings.Join(missing, ", "))
	}
	return nil
}
