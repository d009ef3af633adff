package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/gosmithy/gosmithy"
	"github.com/gosmithy/gosmithy/cmd/internal/cliutil"
	"github.com/gosmithy/gosmithy/internal/modelcache"
	"github.com/gosmithy/gosmithy/model"
)

const dumpUsage = `gosmithy dump - Output the assembled model as JSON or YAML

Usage:
  gosmithy dump [options] PATH...

Options:
  -f, --format FMT   Output format: json, yaml (default: json)
  -o, --output FILE  Write to FILE instead of stdout
  --compact          Minified JSON (no indentation)
  --cache            Reuse cached output when inputs are unchanged
  --cache-dir DIR    Cache directory (default: user cache dir)
  -h, --help         Show help

Examples:
  gosmithy dump model/
  gosmithy dump -f yaml model/
  gosmithy dump --cache model/ | jq '.shapes'
`

func (c *cli) cmdDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, dumpUsage) }

	format := fs.String("f", "", "output format")
	fs.StringVar(format, "format", "", "output format")
	output := fs.String("o", "", "output file")
	fs.StringVar(output, "output", "", "output file")
	compact := fs.Bool("compact", false, "minified JSON")
	useCache := fs.Bool("cache", false, "use render cache")
	cacheDir := fs.String("cache-dir", "", "cache directory")
	help := fs.Bool("h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")

	if err := fs.Parse(args); err != nil {
		return exitError
	}
	if *help || c.helpFlag {
		fmt.Fprint(os.Stdout, dumpUsage)
		return exitOK
	}

	if *format == "" {
		*format = "json"
		if c.projectConfig != nil && c.projectConfig.Output.Format != "" {
			*format = c.projectConfig.Output.Format
		}
	}
	if *format != "json" && *format != "yaml" {
		printError("unknown format %q", *format)
		return exitError
	}

	src, err := c.buildSource(fs.Args())
	if err != nil {
		printError("%v", err)
		return exitError
	}
	inputs, err := readInputs(src)
	if err != nil {
		printError("%v", err)
		return exitError
	}

	cache, key := c.openCache(*useCache, *cacheDir, *format, *compact, inputs)

	var rendered []byte
	var cached modelcache.Payload
	if hit, err := cache.Get(key, *format, &cached); err == nil && hit {
		rendered = cached.Rendered
	}

	if rendered == nil {
		var opts []gosmithy.LoadOption
		if logger := c.setupLogger(); logger != nil {
			opts = append(opts, gosmithy.WithLogger(logger))
		}
		m, err := gosmithy.Load(gosmithy.Mem(inputs), opts...)
		if err != nil {
			printError("%v", err)
			return exitError
		}
		rendered, err = renderModel(m, *format, *compact)
		if err != nil {
			printError("%v", err)
			return exitError
		}
		if err := cache.Put(key, &modelcache.Payload{Format: *format, Rendered: rendered}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cache write failed: %v\n", err)
		}
	}

	out, closeOut, err := cliutil.GetOutput(*output)
	if err != nil {
		printError("%v", err)
		return exitError
	}
	defer closeOut()
	out.Write(rendered)
	return exitOK
}

func readInputs(src gosmithy.Source) (map[string][]byte, error) {
	paths, err := src.Files()
	if err != nil {
		return nil, err
	}
	inputs := make(map[string][]byte, len(paths))
	for _, p := range paths {
		content, err := src.Read(p)
		if err != nil {
			return nil, err
		}
		inputs[p] = content
	}
	return inputs, nil
}

// openCache returns the render cache and key, or a nil cache (a no-op)
// when caching is disabled or unavailable.
func (c *cli) openCache(enabled bool, dir, format string, compact bool, inputs map[string][]byte) (*modelcache.Cache, modelcache.Digest) {
	if !enabled && c.projectConfig != nil && c.projectConfig.Cache.Enabled {
		enabled = true
		if dir == "" {
			dir = c.projectConfig.Cache.Dir
		}
	}
	renderTag := format
	if compact {
		renderTag += "-compact"
	}
	key := modelcache.Key(renderTag, inputs)
	if !enabled {
		return nil, key
	}

	var cache *modelcache.Cache
	var err error
	if dir != "" {
		cache, err = modelcache.OpenDir(dir)
	} else {
		cache, err = modelcache.Open("gosmithy")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache unavailable: %v\n", err)
		return nil, key
	}
	return cache, key
}

// dumpShape is the serialized form of one shape.
type dumpShape struct {
	ID      string       `json:"id" yaml:"id"`
	Type    string       `json:"type" yaml:"type"`
	Traits  []dumpTrait  `json:"traits,omitempty" yaml:"traits,omitempty"`
	Members []dumpMember `json:"members,omitempty" yaml:"members,omitempty"`
	Props   []dumpProp   `json:"properties,omitempty" yaml:"properties,omitempty"`
}

type dumpTrait struct {
	ID    string `json:"id" yaml:"id"`
	Value any    `json:"value" yaml:"value"`
}

type dumpMember struct {
	Name      string      `json:"name" yaml:"name"`
	Target    string      `json:"target,omitempty" yaml:"target,omitempty"`
	EnumValue any         `json:"enumValue,omitempty" yaml:"enumValue,omitempty"`
	Traits    []dumpTrait `json:"traits,omitempty" yaml:"traits,omitempty"`
}

type dumpProp struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

type dumpModel struct {
	Version     string         `json:"version,omitempty" yaml:"version,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Shapes      []dumpShape    `json:"shapes" yaml:"shapes"`
	Diagnostics []string       `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

func renderModel(m *model.Model, format string, compact bool) ([]byte, error) {
	// JSON keeps node types so object members stay in source order; YAML
	// goes through plain Go values.
	convert := func(n model.Node) any { return n }
	if format == "yaml" {
		convert = func(n model.Node) any { return model.NodeToAny(n) }
	}

	doc := dumpModel{Version: m.Version}
	if len(m.Metadata) > 0 {
		doc.Metadata = make(map[string]any, len(m.Metadata))
		for k, v := range m.Metadata {
			doc.Metadata[k] = convert(v)
		}
	}
	for _, s := range m.Shapes() {
		ds := dumpShape{
			ID:     s.ID.String(),
			Type:   s.Type.String(),
			Traits: convertTraits(s.Traits, convert),
		}
		for _, member := range s.Members {
			dm := dumpMember{
				Name:   member.Name,
				Traits: convertTraits(member.Traits, convert),
			}
			if member.Target.Name != "" {
				dm.Target = member.Target.String()
			}
			if member.EnumValue != nil {
				dm.EnumValue = convert(member.EnumValue)
			}
			ds.Members = append(ds.Members, dm)
		}
		for _, p := range s.Props {
			ds.Props = append(ds.Props, dumpProp{Name: p.Name, Value: convert(p.Value)})
		}
		doc.Shapes = append(doc.Shapes, ds)
	}
	for _, d := range m.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, d.String())
	}

	if format == "yaml" {
		return yaml.Marshal(doc)
	}
	if compact {
		return json.Marshal(doc)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func convertTraits(traits []model.Trait, convert func(model.Node) any) []dumpTrait {
	out := make([]dumpTrait, 0, len(traits))
	for _, t := range traits {
		out = append(out, dumpTrait{ID: t.ID.String(), Value: convert(t.Value)})
	}
	return out
}
