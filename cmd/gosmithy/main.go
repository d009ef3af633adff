// Command gosmithy is a CLI tool for loading, checking, and dumping
// Smithy models.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/gosmithy/gosmithy"
	"github.com/gosmithy/gosmithy/cmd/internal/cliutil"
	"github.com/gosmithy/gosmithy/model"
)

// Exit codes.
const (
	exitOK    = 0 // success
	exitError = 1 // user error or processing failure
	exitDiag  = 2 // model has error diagnostics
)

const usage = `gosmithy - Smithy IDL parser and model tool

Usage:
  gosmithy <command> [options] [arguments]

Commands:
  load    Load IDL files and report a model summary
  lint    Check IDL files for issues
  dump    Output the assembled model as JSON or YAML
  tokens  Print the token stream of one IDL file
  version Show version

Common options:
  -p, --path PATH   Add a model directory (repeatable)
  --config FILE     Project config file (default: gosmithy.toml if present)
  -v, --verbose     Enable debug logging
  -vv               Enable trace logging (implies -v)
  -h, --help        Show help

Examples:
  gosmithy load model/
  gosmithy lint weather.smithy
  gosmithy dump -f yaml model/ | less
  gosmithy tokens weather.smithy
`

type cli struct {
	verbose  int
	paths    []string
	config   string
	noColor  bool
	helpFlag bool

	projectConfig *projectConfig
}

func main() {
	os.Exit(run())
}

func run() int {
	var c cli
	args := os.Args[1:]
	var cmdArgs []string
	var cmd string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			c.helpFlag = true
		case arg == "-v" || arg == "--verbose":
			if c.verbose < 1 {
				c.verbose = 1
			}
		case arg == "-vv":
			c.verbose = 2
		case arg == "--no-color":
			c.noColor = true
		case arg == "-p" || arg == "--path":
			if i+1 < len(args) {
				i++
				c.paths = append(c.paths, args[i])
			}
		case strings.HasPrefix(arg, "-p"):
			c.paths = append(c.paths, arg[2:])
		case strings.HasPrefix(arg, "--path="):
			c.paths = append(c.paths, arg[7:])
		case arg == "--config":
			if i+1 < len(args) {
				i++
				c.config = args[i]
			}
		case strings.HasPrefix(arg, "--config="):
			c.config = arg[9:]
		case len(arg) > 0 && arg[0] == '-':
			cmdArgs = append(cmdArgs, arg)
		default:
			if cmd == "" {
				cmd = arg
			} else {
				cmdArgs = append(cmdArgs, arg)
			}
		}
	}

	if c.helpFlag && cmd == "" {
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	}
	if cmd == "" {
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}

	if err := c.applyConfig(); err != nil {
		printError("%v", err)
		return exitError
	}

	switch cmd {
	case "load":
		return c.cmdLoad(cmdArgs)
	case "lint":
		return c.cmdLint(cmdArgs)
	case "dump":
		return c.cmdDump(cmdArgs)
	case "tokens":
		return c.cmdTokens(cmdArgs)
	case "version":
		printVersion()
		return exitOK
	case "help":
		fmt.Fprint(os.Stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		return exitError
	}
}

func (c *cli) setupLogger() *slog.Logger {
	if c.verbose == 0 {
		return nil
	}
	level := slog.LevelDebug
	if c.verbose >= 2 {
		level = gosmithy.LevelTrace
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// buildSource composes the model source from -p paths, config sources,
// and positional arguments, which may name files or directories.
func (c *cli) buildSource(args []string) (gosmithy.Source, error) {
	var sources []gosmithy.Source
	add := func(path string) {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot access %s: %v\n", path, err)
			return
		}
		if info.IsDir() {
			if src, err := gosmithy.DirTree(path); err == nil {
				sources = append(sources, src)
			}
			return
		}
		sources = append(sources, gosmithy.Files(path))
	}
	for _, p := range c.paths {
		add(p)
	}
	for _, a := range args {
		add(a)
	}
	if len(sources) == 0 {
		return nil, gosmithy.ErrNoSources
	}
	return gosmithy.Multi(sources...), nil
}

func (c *cli) loadModel(args []string) (*model.Model, error) {
	src, err := c.buildSource(args)
	if err != nil {
		return nil, err
	}
	var opts []gosmithy.LoadOption
	if logger := c.setupLogger(); logger != nil {
		opts = append(opts, gosmithy.WithLogger(logger))
	}
	return gosmithy.Load(src, opts...)
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("gosmithy %s\n", version)
}

func printError(format string, args ...any) {
	cliutil.PrintError(format, args...)
}
