package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mdconf/internal/engine"
	applog "github.com/san-kum/mdconf/internal/log"
	"github.com/san-kum/mdconf/internal/marshal"
	"github.com/san-kum/mdconf/internal/schema"
)

var (
	logLevel string
	// check
	watch    bool
	workers  int
	debounce time.Duration
	// show / plot
	preset string
	raw    bool
	height int
	width  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mdconf",
		Short:         "validate and inspect simulation input files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			applog.Configure(applog.Config{Level: logLevel})
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	checkCmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "load files and report the first error in each",
		Args:  cobra.MinimumNArgs(1),
		RunE:  checkFile,
	}
	checkCmd.Flags().BoolVar(&watch, "watch", false, "re-check whenever the file changes")
	checkCmd.Flags().IntVar(&workers, "workers", 0, "concurrent loads (0 = GOMAXPROCS)")
	checkCmd.Flags().DurationVar(&debounce, "debounce", engine.DefaultDebounce, "quiet period before a re-check")

	showCmd := &cobra.Command{
		Use:   "show [file]",
		Short: "print the loaded configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showConfig,
	}
	showCmd.Flags().StringVar(&preset, "preset", "", "show a preset instead of a file")
	showCmd.Flags().BoolVar(&raw, "raw", false, "dump the native storage")

	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "print the accepted keys",
		Args:  cobra.NoArgs,
		RunE:  printSchema,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [file] [property]",
		Short: "plot a list property, e.g. temperatures",
		Args:  cobra.ExactArgs(2),
		RunE:  plotProperty,
	}
	plotCmd.Flags().IntVar(&height, "height", 10, "graph height")
	plotCmd.Flags().IntVar(&width, "width", 60, "graph width")

	presetsCmd := &cobra.Command{
		Use:   "presets [name]",
		Short: "list presets or print one",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(checkCmd, showCmd, schemaCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorPanel.Render(err.Error()))
		os.Exit(1)
	}
}

func checkFile(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !watch {
		failed := 0
		for _, r := range engine.LoadAll(ctx, args, workers) {
			if r.Err != nil {
				failed++
				fmt.Println(errorPanel.Render(describe(r.Err)))
				continue
			}
			fmt.Println(okStyle.Render("ok"), subtle.Render(r.Path))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, len(args))
		}
		return nil
	}

	if len(args) != 1 {
		return errors.New("--watch takes a single file")
	}
	path := args[0]
	return engine.NewWatcher(path, debounce).Run(ctx, func(cfg *engine.Config, err error) {
		stamp := subtle.Render(time.Now().Format("15:04:05"))
		if err != nil {
			fmt.Println(stamp, errorPanel.Render(describe(err)))
			return
		}
		fmt.Println(stamp, okStyle.Render("ok"), subtle.Render(path))
	})
}

// describe adds the failing section's full path to marshaling errors.
func describe(err error) string {
	var merr *marshal.Error
	if errors.As(err, &merr) && merr.Key != "" {
		return fmt.Sprintf("%s\nat %s.%s", err, merr.Path, merr.Key)
	}
	return err.Error()
}

func loadTarget(args []string) (*engine.Config, string, error) {
	switch {
	case preset != "":
		cfg, err := engine.GetPreset(preset)
		return cfg, "preset " + preset, err
	case len(args) == 1:
		cfg, err := engine.Load(args[0])
		return cfg, args[0], err
	default:
		return nil, "", errors.New("need a file or --preset")
	}
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadTarget(args)
	if err != nil {
		return err
	}

	if raw {
		spew.Config.DisableMethods = true
		spew.Dump(cfg)
		return nil
	}

	fmt.Println(headerStyle.Render(name))
	if cfg.Meta.Name != "" {
		fmt.Printf("%s %s", labelStyle.Render("name:"), cfg.Meta.Name)
		if len(cfg.Meta.Tags) > 0 {
			fmt.Printf(" %s", subtle.Render("["+strings.Join(cfg.Meta.Tags, ", ")+"]"))
		}
		fmt.Println()
	}

	cfg.Schema().Walk(func(sec *schema.Section, depth int) {
		indent := strings.Repeat("  ", depth)
		if depth > 0 {
			state := subtle.Render("(defaults)")
			if sec.Provided() {
				state = okStyle.Render("(provided)")
			}
			fmt.Printf("%s%s %s\n", strings.Repeat("  ", depth-1), sectionStyle.Render(sec.Name()+":"), state)
		}
		for _, p := range sec.Properties() {
			line := fmt.Sprintf("%s%s = %s", indent, labelStyle.Render(p.Name()), valueStyle.Render(schema.Format(p)))
			if fl, ok := p.(*schema.FloatList); ok {
				if s := sparkline(fl.Buf()[:*fl.Length()]); s != "" {
					line += "  " + s
				}
			}
			fmt.Println(line)
		}
	})
	return nil
}

func printSchema(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tKIND\tACCEPTS")
	engine.DefaultConfig().Schema().Walk(func(sec *schema.Section, depth int) {
		prefix := strings.TrimPrefix(strings.TrimPrefix(sec.Path(), "root"), ".")
		if prefix != "" {
			fmt.Fprintf(w, "%s\tsection\ta map\n", prefix)
			prefix += "."
		}
		for _, p := range sec.Properties() {
			fmt.Fprintf(w, "%s%s\t%s\t%s\n", prefix, p.Name(), p.Kind(), p.Expect())
		}
	})
	fmt.Fprintf(w, "%s*\treserved\tanything (ignored)\n", marshal.DefaultReservedPrefix)
	return w.Flush()
}

func plotProperty(cmd *cobra.Command, args []string) error {
	cfg, err := engine.Load(args[0])
	if err != nil {
		return err
	}

	path := args[1]
	p, ok := cfg.Schema().Lookup(path)
	if !ok {
		return fmt.Errorf("no property %q", path)
	}

	var data []float64
	switch p := p.(type) {
	case *schema.FloatList:
		data = append(data, p.Buf()[:*p.Length()]...)
	case *schema.IntList:
		for _, v := range p.Buf()[:*p.Length()] {
			data = append(data, float64(v))
		}
	case *schema.Point3:
		data = p.Slot()[:]
	default:
		return fmt.Errorf("%s is %s, not a list", path, p.Kind())
	}
	if len(data) == 0 {
		return fmt.Errorf("%s is empty", path)
	}

	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("%s (%d values)", path, len(data))),
	)
	fmt.Println(graph)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		doc, ok := engine.Presets[args[0]]
		if !ok {
			return fmt.Errorf("%w %q", engine.ErrUnknownPreset, args[0])
		}
		fmt.Print(strings.TrimLeft(doc, "\n"))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTITLE\tSPECIES\tDESCRIPTION")
	for _, name := range engine.ListPresets() {
		cfg, err := engine.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", name, cfg.Title(), strings.Join(cfg.Species(), ","), cfg.Meta.Name)
	}
	return w.Flush()
}
