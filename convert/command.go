package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"

	"github.com/iand/semdoc/debug"
	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/engine"
	"github.com/iand/semdoc/format"
	"github.com/iand/semdoc/logging"
)

var Command = &cli.Command{
	Name:      "convert",
	Usage:     "Convert documents to semantic HTML",
	ArgsUsage: "FILE|URL...",
	Action:    convert,
	Flags: append([]cli.Flag{
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "Directory in which to write output files. Use '-' to write to stdout. Defaults to the directory of each input.",
			Destination: &convertopts.out,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "YAML file holding conversion options.",
			Destination: &convertopts.configFile,
		},
		&cli.BoolFlag{
			Name:        "standalone",
			Usage:       "Produce a complete HTML document rather than just the body content.",
			Destination: &convertopts.standalone,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Post-process output. One of 'none', 'pretty' or 'minify'.",
			Value:       string(format.None),
			Destination: &convertopts.format,
		},
		&cli.StringFlag{
			Name:        "theme",
			Usage:       "Syntax highlighting theme for source listings.",
			Destination: &convertopts.theme,
		},
		&cli.StringFlag{
			Name:        "title-tag",
			Usage:       "Element used for block titles.",
			Destination: &convertopts.titleTag,
		},
		&cli.StringSliceFlag{
			Name:        "attribute",
			Aliases:     []string{"a"},
			Usage:       "Set a document attribute using 'name=value'. Use 'name!' to unset a default. May be repeated.",
			Destination: &convertopts.attributes,
		},
		&cli.BoolFlag{
			Name:        "watch",
			Usage:       "Convert again whenever a local input file changes.",
			Destination: &convertopts.watch,
		},
		&cli.StringFlag{
			Name:        "inspect",
			Usage:       "Print the parsed structure of the input instead of converting it. Use 'tree' for an outline of the whole document or 'block/{id}' for a single block.",
			Destination: &convertopts.inspect,
		},
	}, logging.Flags...),
}

var convertopts struct {
	out        string
	configFile string
	standalone bool
	format     string
	theme      string
	titleTag   string
	attributes cli.StringSlice
	watch      bool
	inspect    string
}

func convert(cc *cli.Context) error {
	logging.Setup()

	inputs := cc.Args().Slice()
	if len(inputs) == 0 {
		return fmt.Errorf("no input files specified")
	}

	opts, err := options(cc)
	if err != nil {
		return err
	}
	e := engine.New(opts)
	w := cc.App.Writer

	if convertopts.inspect != "" {
		for _, in := range inputs {
			if err := inspect(cc.Context, e, in, w); err != nil {
				return err
			}
		}
		return nil
	}

	for _, in := range inputs {
		if err := convertOne(cc.Context, e, in, w); err != nil {
			return err
		}
	}

	if convertopts.watch {
		return watch(cc.Context, e, inputs, w)
	}
	return nil
}

// options builds engine options from the config file, if any, overlaid with
// flags given on the command line.
func options(cc *cli.Context) (engine.Options, error) {
	opts := engine.DefaultOptions()
	if convertopts.configFile != "" {
		var err error
		opts, err = engine.LoadConfig(convertopts.configFile)
		if err != nil {
			return opts, fmt.Errorf("load config: %w", err)
		}
	}

	if cc.IsSet("standalone") {
		opts.Standalone = convertopts.standalone
	}
	if cc.IsSet("format") {
		mode, err := format.ParseMode(convertopts.format)
		if err != nil {
			return opts, err
		}
		opts.Format = mode
	}
	if convertopts.theme != "" {
		opts.Attributes[doc.AttrHighlightTheme] = convertopts.theme
	}
	if convertopts.titleTag != "" {
		opts.TitleTag = convertopts.titleTag
	}
	if err := applyAttributes(opts.Attributes, convertopts.attributes.Value()); err != nil {
		return opts, err
	}
	return opts, nil
}

func applyAttributes(attrs map[string]string, specs []string) error {
	for _, spec := range specs {
		name, value, hasValue := strings.Cut(spec, "=")
		name = strings.TrimSpace(name)
		switch {
		case strings.HasSuffix(name, "!") && !hasValue:
			delete(attrs, strings.TrimSuffix(name, "!"))
			continue
		case name == "":
			return fmt.Errorf("invalid attribute %q: missing name", spec)
		}
		attrs[name] = value
	}
	return nil
}

func outputOptions() engine.FileOptions {
	switch convertopts.out {
	case "-":
		return engine.FileOptions{}
	case "":
		return engine.FileOptions{ToFile: true}
	}
	return engine.FileOptions{ToFile: true, OutDir: convertopts.out}
}

func convertOne(ctx context.Context, e *engine.Engine, in string, w io.Writer) error {
	res, err := e.ConvertFile(ctx, in, outputOptions())
	if err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}
	if res.Path == "" {
		fmt.Fprintln(w, res.HTML)
	}
	return nil
}

func inspect(ctx context.Context, e *engine.Engine, in string, w io.Writer) error {
	src, err := engine.LoadFile(ctx, in)
	if err != nil {
		return fmt.Errorf("load file: %w", err)
	}
	d := e.Parse(src)

	if convertopts.inspect == "tree" {
		return debug.DumpDocument(d, w)
	}
	if strings.HasPrefix(convertopts.inspect, "block/") {
		id := convertopts.inspect[6:]
		b, ok := debug.FindBlock(d, id)
		if !ok {
			return fmt.Errorf("no block found with id %s", id)
		}
		return debug.DumpBlock(b, w)
	}
	return fmt.Errorf("unrecognised object to inspect: %s", convertopts.inspect)
}

// watch converts inputs again as they change until interrupted. Directories
// are watched rather than files so that editors which replace files on save
// are still noticed.
func watch(ctx context.Context, e *engine.Engine, inputs []string, w io.Writer) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer watcher.Close()

	files := map[string]string{}
	dirs := map[string]bool{}
	for _, in := range inputs {
		if engine.IsURL(in) {
			logging.Warn("cannot watch remote document", "url", in)
			continue
		}
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", in, err)
		}
		files[abs] = in

		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	if len(files) == 0 {
		return fmt.Errorf("no local files to watch")
	}

	logging.Info("watching for changes", "files", len(files))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			in, ok := files[abs]
			if !ok {
				continue
			}
			logging.Info("source changed", "file", in)
			if err := convertOne(ctx, e, in, w); err != nil {
				logging.Error("conversion failed", "file", in, "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", "error", err)
		}
	}
}
