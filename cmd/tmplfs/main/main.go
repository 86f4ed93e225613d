package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tmplfs/cmd/tmplfs"
	"github.com/arthur-debert/tmplfs/pkg/ui/styles"
	"github.com/arthur-debert/tmplfs/pkg/ui/text"
)

func main() {
	rootCmd := tmplfs.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		errorStyle := styles.GetStyle("Error")
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))

		mutedStyle := styles.GetStyle("Muted")
		for _, line := range text.DetailLines(err) {
			fmt.Fprintln(os.Stderr, mutedStyle.Render("  "+line))
		}

		os.Exit(1)
	}
}
