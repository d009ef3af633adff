package main

import (
	"flag"
	"fmt"
	"os"
)

const loadUsage = `gosmithy load - Load IDL files and report a model summary

Usage:
  gosmithy load [options] PATH...

PATH arguments may be .smithy files or directories, which are walked
recursively.

Options:
  -q, --quiet   Suppress the summary; exit code only
  -h, --help    Show help

Examples:
  gosmithy load model/
  gosmithy load weather.smithy common.smithy
`

func (c *cli) cmdLoad(args []string) int {
	fs := flag.NewFlagSet("load", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, loadUsage) }

	quiet := fs.Bool("q", false, "suppress summary")
	fs.BoolVar(quiet, "quiet", false, "suppress summary")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, loadUsage)
		return exitOK
	}

	m, err := c.loadModel(fs.Args())
	if err != nil {
		printError("%v", err)
		return exitError
	}

	if !*quiet {
		fmt.Printf("version:     %s\n", orDash(m.Version))
		fmt.Printf("shapes:      %d\n", m.NumShapes())
		fmt.Printf("namespaces:  %d\n", len(m.Namespaces()))
		for _, ns := range m.Namespaces() {
			fmt.Printf("  %-40s %d shapes\n", ns, len(m.ShapesInNamespace(ns)))
		}
		if len(m.Diagnostics) > 0 {
			fmt.Printf("diagnostics: %d\n", len(m.Diagnostics))
			for _, d := range m.Diagnostics {
				fmt.Printf("  %s\n", d)
			}
		}
	}

	if m.HasErrors() {
		return exitDiag
	}
	return exitOK
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
