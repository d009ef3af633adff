package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/gosmithy/gosmithy/internal/types"
	"github.com/gosmithy/gosmithy/model"
)

const lintUsage = `gosmithy lint - Check IDL files for issues

Usage:
  gosmithy lint [options] PATH...

Options:
  --fail-on LEVEL  Exit non-zero at this severity or worse:
                   fatal, error, warning, note (default: error)
  --format FMT     Output format: text, json (default: text)
  --codes          List known diagnostic codes and exit
  --quiet          No output, exit code only
  -h, --help       Show help

Examples:
  gosmithy lint model/
  gosmithy lint --fail-on warning model/
  gosmithy lint --format json model/ | jq '.[].code'
`

var severityNames = map[string]model.Severity{
	"fatal":   model.SeverityFatal,
	"error":   model.SeverityError,
	"warning": model.SeverityWarning,
	"note":    model.SeverityNote,
}

func (c *cli) cmdLint(args []string) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, lintUsage) }

	failOn := fs.String("fail-on", "error", "severity threshold for non-zero exit")
	format := fs.String("format", "text", "output format")
	codes := fs.Bool("codes", false, "list diagnostic codes")
	quiet := fs.Bool("quiet", false, "no output")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, lintUsage)
		return exitOK
	}
	if *codes {
		printDiagnosticCodes()
		return exitOK
	}

	threshold, ok := severityNames[*failOn]
	if !ok {
		printError("unknown severity %q", *failOn)
		return exitError
	}

	m, err := c.loadModel(fs.Args())
	if err != nil {
		printError("%v", err)
		return exitError
	}

	if !*quiet {
		switch *format {
		case "text":
			c.printLintText(m.Diagnostics)
		case "json":
			if err := printLintJSON(m.Diagnostics); err != nil {
				printError("%v", err)
				return exitError
			}
		default:
			printError("unknown format %q", *format)
			return exitError
		}
	}

	failed := slices.ContainsFunc(m.Diagnostics, func(d model.Diagnostic) bool {
		return d.Severity <= threshold
	})
	if failed {
		return exitDiag
	}
	return exitOK
}

// severityColors styles the severity label per level. Color output is
// suppressed when stdout is not a terminal or --no-color is set.
var severityColors = map[model.Severity]*color.Color{
	model.SeverityFatal:   color.New(color.FgRed, color.Bold),
	model.SeverityError:   color.New(color.FgRed),
	model.SeverityWarning: color.New(color.FgYellow),
	model.SeverityNote:    color.New(color.FgCyan),
}

func (c *cli) printLintText(diags []model.Diagnostic) {
	useColor := !c.noColor && isatty.IsTerminal(os.Stdout.Fd())
	for _, d := range diags {
		label := d.Severity.String()
		if useColor {
			if cl, ok := severityColors[d.Severity]; ok {
				label = cl.Sprint(label)
			}
		}
		fmt.Printf("%s: %s: %s [%s]\n", d.Location, label, d.Message, d.Code)
	}
	if len(diags) == 0 {
		fmt.Println("no issues found")
	}
}

type lintDiagnostic struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

func printLintJSON(diags []model.Diagnostic) error {
	out := make([]lintDiagnostic, len(diags))
	for i, d := range diags {
		out[i] = lintDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code,
			Message:  d.Message,
			File:     d.Location.File,
			Line:     d.Location.Line,
			Column:   d.Location.Column,
		}
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func printDiagnosticCodes() {
	for _, info := range types.AllDiagnosticCodes() {
		fmt.Printf("%-22s %s\n", info.Code, info.Phase)
	}
}
