// Package main is a demo settings editor: a schema-driven form over a
// persisted settings file, with optional Lua type extensions and live
// reload of external edits.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/formbind/codec"
	"github.com/dshills/formbind/logger"
	"github.com/dshills/formbind/luaext"
	"github.com/dshills/formbind/schema"
	"github.com/dshills/formbind/settings"
	"github.com/dshills/formbind/tui"
	"github.com/dshills/formbind/watch"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	scriptPath string
	liveReload bool
}

func run() int {
	opts := parseFlags()
	logger.Initialize()

	configPath := opts.configPath
	if configPath == "" {
		var err error
		configPath, err = settings.DefaultPath("formbind-demo", "settings.json")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot resolve config path: %v\n", err)
			return 1
		}
	}

	c := codec.New()
	if opts.scriptPath != "" {
		host := luaext.NewHost(c)
		defer host.Close()
		if err := host.DoFile(opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: extension script failed: %v\n", err)
			return 1
		}
	}

	model := settings.New(demoSchema(), settings.WithCodec(c))
	if err := model.Load(configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot load %s: %v\n", configPath, err)
		return 1
	}

	if opts.liveReload {
		reloader, err := watch.NewReloader(model, watch.WithInterval(500*time.Millisecond))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot watch %s: %v\n", configPath, err)
			return 1
		}
		reloader.Start()
		defer reloader.Stop()
	}

	form, err := tui.NewForm(model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot build form: %v\n", err)
		return 1
	}
	defer form.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	if err := form.Run(screen); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// demoSchema describes an editor-like settings surface: every widget kind
// appears at least once.
func demoSchema() *schema.Schema {
	s := schema.New()

	s.MustAdd(schema.Field{
		Name:    "window_title",
		Type:    schema.TypeString,
		Default: "Untitled Project",
		Title:   "Window Title",
		Group:   "Appearance",
	})
	s.MustAdd(schema.Field{
		Name:    "font_family",
		Type:    schema.TypeString,
		Default: "monospace",
		Title:   "Font Family",
		Group:   "Appearance",
		Choices: []string{"monospace", "serif", "sans-serif"},
	})
	s.MustAdd(schema.Field{
		Name:    "font_size",
		Type:    schema.TypeInt,
		Default: 12,
		Title:   "Font Size",
		Group:   "Appearance",
		Minimum: schema.MinValue(6),
		Maximum: schema.MaxValue(72),
	})
	s.MustAdd(schema.Field{
		Name:    "line_spacing",
		Type:    schema.TypeFloat,
		Default: 1.2,
		Title:   "Line Spacing",
		Group:   "Appearance",
		Minimum: schema.MinValue(0.8),
		Maximum: schema.MaxValue(3.0),
	})

	s.MustAdd(schema.Field{
		Name:    "auto_save",
		Type:    schema.TypeBool,
		Default: true,
		Title:   "Auto Save",
		Group:   "Editing",
	})
	s.MustAdd(schema.Field{
		Name:    "tab_size",
		Type:    schema.TypeInt,
		Default: 4,
		Title:   "Tab Size",
		Group:   "Editing",
		Minimum: schema.MinValue(1),
		Maximum: schema.MaxValue(16),
	})

	s.MustAdd(schema.Field{
		Name:  "workspace",
		Type:  schema.TypePath,
		Title: "Workspace Directory",
		Group: "Project",
	})
	s.MustAdd(schema.Field{
		Name:   "recent_files",
		Type:   schema.TypeStringList,
		Title:  "Recent Files",
		Group:  "Project",
		Widget: "tags",
	})
	s.MustAdd(schema.Field{
		Name:  "homepage",
		Type:  schema.TypeURL,
		Title: "Project Homepage",
		Group: "Project",
	})

	s.MustAdd(schema.Field{
		Name:   "api_token",
		Type:   schema.TypeString,
		Title:  "API Token",
		Group:  "Account",
		Widget: "password",
	})

	// Runtime-only; never persisted and never shown.
	s.MustAdd(schema.Field{
		Name:    "session_id",
		Type:    schema.TypeString,
		Exclude: true,
	})

	return s
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to settings file")
	flag.StringVar(&opts.configPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua extension script registering custom value types")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua extension script (shorthand)")
	flag.BoolVar(&opts.liveReload, "watch", false, "Reload when the settings file changes on disk")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "formbind-demo - schema-driven settings editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: formbind-demo [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: Tab/Shift-Tab move between fields, Esc quits.\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("formbind-demo %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		os.Exit(0)
	}

	return opts
}
