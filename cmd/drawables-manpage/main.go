package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/drawables/cmd/drawables"
	"github.com/arthur-debert/drawables/internal/version"
)

func main() {
	rootCmd := drawables.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DRAWABLES",
		Section: "1",
		Source:  "drawables " + version.Version,
		Manual:  "drawables manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
