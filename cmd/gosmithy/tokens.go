package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gosmithy/gosmithy/internal/lexer"
)

const tokensUsage = `gosmithy tokens - Print the token stream of one IDL file

Usage:
  gosmithy tokens [options] FILE

Options:
  --trivia    Include whitespace and comment tokens
  -h, --help  Show help

Examples:
  gosmithy tokens weather.smithy
  gosmithy tokens --trivia weather.smithy
`

func (c *cli) cmdTokens(args []string) int {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, tokensUsage) }

	trivia := fs.Bool("trivia", false, "include trivia tokens")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, tokensUsage)
		return exitOK
	}
	if fs.NArg() != 1 {
		printError("exactly one file expected")
		fmt.Fprint(os.Stderr, tokensUsage)
		return exitError
	}

	path := fs.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	lex := lexer.New(source, c.setupLogger())
	for {
		tok := lex.NextToken()
		if tok.Kind == lexer.TokEOF {
			break
		}
		if tok.Kind.IsTrivia() && !*trivia {
			continue
		}
		text := string(source[tok.Span.Start:tok.Span.End])
		fmt.Printf("%6d..%-6d %-12s %s\n",
			tok.Span.Start, tok.Span.End, tok.Kind.Name(), abbreviate(text))
	}

	for _, d := range lex.Diagnostics() {
		fmt.Fprintf(os.Stderr, "%d..%d: %s [%s]\n", d.Span.Start, d.Span.End, d.Message, d.Code)
	}
	return exitOK
}

// abbreviate quotes the token text and trims it to one display line.
func abbreviate(s string) string {
	q := strconv.Quote(s)
	if len(q) > 60 {
		q = q[:57] + "..."
	}
	return strings.ReplaceAll(q, "\n", " ")
}
