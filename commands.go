package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"wireterm/internal/canvas"
	"wireterm/internal/export"
	"wireterm/internal/grid"
	"wireterm/internal/logging"
	"wireterm/internal/storage"
	"wireterm/internal/templates"
)

// app carries what every command needs once flags and config are parsed.
type app struct {
	cfgFile  string
	cfg      *Config
	log      *slog.Logger
	closeLog func() error
}

// Execute runs the wireterm command line.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wireterm [design]",
		Short: "Draw ASCII wireframes and diagrams in the terminal",
		Long: `wireterm is a terminal editor for ASCII wireframes and diagrams. Place
parametric UI and diagram shapes on a character grid, move and stack them,
then export the result as Markdown, text, HTML or PNG.

Without arguments the editor restores the last session. With a design file
(.json or .yaml) it opens and saves that file.

Examples:
  wireterm                               Resume the last session
  wireterm login.json                    Edit login.json
  wireterm export login.json -f html     Print login.json as HTML
  wireterm render button --text Submit   Print a single template`,
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
		RunE:               a.runEditor,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ~/.wireterm.yaml)")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("mode", "", "template mode (ui or diagram)")
	root.Flags().String("token", "", "open a shared design token or link")

	root.AddCommand(
		a.exportCmd(),
		a.templatesCmd(),
		a.renderCmd(),
		a.importCmd(),
		a.shareCmd(),
		a.unshareCmd(),
		a.watchCmd(),
		a.blueprintCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := newViper(a.cfgFile)
	if err != nil {
		return err
	}
	if err := v.BindPFlag("log_level", cmd.Flags().Lookup("log-level")); err != nil {
		return err
	}
	if err := v.BindPFlag("mode", cmd.Flags().Lookup("mode")); err != nil {
		return err
	}
	if a.cfg, err = loadConfig(v); err != nil {
		return err
	}

	a.log, a.closeLog = logging.Nop(), func() error { return nil }
	if a.cfg.LogFile == "" {
		return nil
	}
	out, closeFn, err := logging.OpenFile(a.cfg.LogFile)
	if err != nil {
		return err
	}
	if a.log, err = logging.New(logging.Config{Level: a.cfg.LogLevel, Output: out}); err != nil {
		closeFn()
		return err
	}
	a.closeLog = closeFn
	a.log.Debug("config loaded", "file", v.ConfigFileUsed(), "mode", a.cfg.Mode)
	return nil
}

func (a *app) teardown(*cobra.Command, []string) error {
	if a.closeLog == nil {
		return nil
	}
	return a.closeLog()
}

func (a *app) newCanvas() *canvas.Canvas {
	return canvas.New(
		canvas.WithSize(a.cfg.Cols, a.cfg.Rows),
		canvas.WithHistoryLimit(a.cfg.HistoryLimit),
		canvas.WithMode(a.cfg.mode()),
		canvas.WithLogger(a.log),
	)
}

func (a *app) runEditor(cmd *cobra.Command, args []string) error {
	c := a.newCanvas()
	m := newModel(a.cfg, c, a.log)

	token, _ := cmd.Flags().GetString("token")
	switch {
	case token != "":
		objects, err := storage.DecodeShare(token, uuid.NewString)
		if err != nil {
			return err
		}
		c.Load(objects, nil)
		m.notify("Opened shared design")
	case len(args) == 1:
		m.filename = args[0]
		st, err := storage.ReadFile(m.filename)
		switch {
		case errors.Is(err, os.ErrNotExist):
			m.notify("New design " + m.filename)
		case err != nil:
			return err
		default:
			applyState(c, st)
		}
		m.savedRevision = c.Revision()
	default:
		m.restoreSession()
		if a.cfg.StartMenu {
			if names, err := m.library.ListDesigns(); err == nil && len(names) > 0 {
				m.designs = names
				m.mode = ModeOpen
			}
		}
	}

	a.log.Info("editor started", "objects", c.Len(), "file", m.filename)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// loadDesign reads a design file, falling back to a named design.
func (a *app) loadDesign(ref string) (storage.State, error) {
	st, err := storage.ReadFile(ref)
	if !errors.Is(err, os.ErrNotExist) {
		return st, err
	}
	lib := storage.Designs{Dir: a.cfg.DesignsDir()}
	st, err = lib.LoadDesign(ref)
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrBadName) {
		return storage.State{}, fmt.Errorf("design %q: %w", ref, os.ErrNotExist)
	}
	return st, err
}

// pickFormat resolves --format, then the output extension, then markdown.
func pickFormat(name, out string) (export.Format, error) {
	if name != "" {
		return export.Lookup(name)
	}
	if out != "" {
		if f, err := export.ForPath(out); err == nil {
			return f, nil
		}
	}
	return export.Lookup("markdown")
}

func (a *app) exportCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:     "export <design>",
		Aliases: []string{"e"},
		Short:   "Export a design as markdown, text, html or png",
		Long: `Export renders a design and writes it in one of the export formats.
Without --output the result goes to stdout.

Examples:
  wireterm export login.json                 Markdown to stdout
  wireterm export login.json -o login.png    Format from the extension
  wireterm export login -f html              A named design as HTML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := pickFormat(format, out)
			if err != nil {
				return err
			}
			st, err := a.loadDesign(args[0])
			if err != nil {
				return err
			}
			if err := writeExport(cmd.OutOrStdout(), out, f, renderState(a.cfg, st)); err != nil {
				return fmt.Errorf("export %s: %w", f.Label, err)
			}
			a.log.Info("exported", "design", args[0], "format", f.Name, "output", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (markdown, text, html, png)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

func (a *app) templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Aliases: []string{"t", "list"},
		Short:   "List the templates of the current mode",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := templates.For(a.cfg.mode())
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tLABEL\tCATEGORY")
			for _, g := range reg.Grouped() {
				for _, d := range g.Templates {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", d.Key, d.Label, g.Category.Label)
				}
			}
			return tw.Flush()
		},
	}
}

func (a *app) renderCmd() *cobra.Command {
	var (
		text, subtitle       string
		items                []string
		width, height, count int
		percent              int
		on                   bool
	)
	cmd := &cobra.Command{
		Use:   "render <template>",
		Short: "Print one template with the given parameters",
		Long: `Render prints a single template. Parameters not given keep the
template's defaults.

Examples:
  wireterm render button --text Submit
  wireterm render tabs --items Home,Docs,About
  wireterm --mode diagram render diamond --width 15 --height 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []templates.Option
			flags := cmd.Flags()
			if flags.Changed("text") {
				opts = append(opts, templates.Text(text))
			}
			if flags.Changed("subtitle") {
				opts = append(opts, templates.Subtitle(subtitle))
			}
			if flags.Changed("items") {
				opts = append(opts, templates.Items(items...))
			}
			if flags.Changed("width") {
				opts = append(opts, templates.Width(width))
			}
			if flags.Changed("height") {
				opts = append(opts, templates.Height(height))
			}
			if flags.Changed("count") {
				opts = append(opts, templates.Count(count))
			}
			if flags.Changed("on") {
				opts = append(opts, templates.On(on))
			}
			if flags.Changed("percent") {
				opts = append(opts, templates.Percent(percent))
			}
			content, err := templates.For(a.cfg.mode()).Generate(args[0], opts...)
			if err != nil {
				return err
			}
			return printContent(cmd.OutOrStdout(), content)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "caption, label or title")
	cmd.Flags().StringVar(&subtitle, "subtitle", "", "secondary text")
	cmd.Flags().StringSliceVar(&items, "items", nil, "comma separated items (tabs, columns, entries)")
	cmd.Flags().IntVar(&width, "width", 0, "outer width")
	cmd.Flags().IntVar(&height, "height", 0, "outer height")
	cmd.Flags().IntVar(&count, "count", 0, "number of rows or repetitions")
	cmd.Flags().BoolVar(&on, "on", false, "checked or enabled state")
	cmd.Flags().IntVar(&percent, "percent", 0, "progress in percent")
	return cmd
}

// printContent writes the lines of a block as drawn on an empty canvas.
func printContent(w io.Writer, content grid.Content) error {
	buf := grid.Render([]grid.Object{{Data: content}}, content.W, content.H)
	for _, line := range buf {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}

// saveOrPrint writes st to out, or prints it as JSON when out is empty.
func saveOrPrint(w io.Writer, out string, st storage.State) error {
	if out != "" {
		return storage.WriteFile(out, st)
	}
	data, err := storage.JSON.Marshal(st)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *app) importCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import <textfile|->",
		Short: "Turn ASCII art into a design",
		Long: `Import reads ASCII art, optionally wrapped in a markdown code fence,
and places it as one object at the standard import position. Use - to read
stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			c := a.newCanvas()
			if _, err := c.Import(strings.TrimRight(string(data), "\r\n")); err != nil {
				return err
			}
			return saveOrPrint(cmd.OutOrStdout(), out, stateOf(c))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "design file to write (default stdout as JSON)")
	return cmd
}

func (a *app) shareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share <design>",
		Short: "Print a share token for a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.loadDesign(args[0])
			if err != nil {
				return err
			}
			token, err := storage.EncodeShare(st.Objects)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func (a *app) unshareCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "unshare <token|link>",
		Short: "Decode a share token or link into a design",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			objects, err := storage.DecodeShare(args[0], uuid.NewString)
			if err != nil {
				return err
			}
			c := a.newCanvas()
			c.Load(objects, nil)
			return saveOrPrint(cmd.OutOrStdout(), out, stateOf(c))
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "design file to write (default stdout as JSON)")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:     "watch <design>",
		Aliases: []string{"w"},
		Short:   "Re-export a design file whenever it changes",
		Long: `Watch exports a design file once, then again every time the file is
written, until interrupted.

Examples:
  wireterm watch login.json -o login.md
  wireterm watch login.yaml -o login.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := pickFormat(format, out)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			render := func() error {
				st, err := storage.ReadFile(args[0])
				if err != nil {
					return err
				}
				return writeExport(cmd.OutOrStdout(), out, f, renderState(a.cfg, st))
			}
			return a.watch(ctx, args[0], render, cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format (markdown, text, html, png)")
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stdout)")
	return cmd
}

// watch calls render now and after each write to path until ctx ends.
// Render failures after the first are reported and watching continues.
func (a *app) watch(ctx context.Context, path string, render func() error, errOut io.Writer) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := render(); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	a.log.Info("watching", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := render(); err != nil {
				a.log.Warn("re-export failed", "path", target, "err", err)
				fmt.Fprintln(errOut, "wireterm:", err)
				continue
			}
			a.log.Debug("re-exported", "path", target, "op", ev.Op.String())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn("watcher error", "err", err)
		}
	}
}

func (a *app) blueprintCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "blueprint",
		Short: "Generate composite layouts: flowcharts, trees, grids and forms",
		Long: `Blueprint prints a generated layout. With --output it writes a design
containing the layout as one object instead.`,
	}
	cmd.PersistentFlags().StringVarP(&out, "output", "o", "", "design file to write")

	emit := func(cmd *cobra.Command, content grid.Content) error {
		if out == "" {
			return printContent(cmd.OutOrStdout(), content)
		}
		c := a.newCanvas()
		c.Insert(canvas.TypeImported, canvas.ImportX, canvas.ImportY, content)
		return storage.WriteFile(out, stateOf(c))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "flowchart [step...]",
		Short: "A vertical chain of boxes joined by arrows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(cmd, templates.Flowchart(args...))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "tree <root> [parent:child,child...]",
		Short:   "An indented tree",
		Example: `  wireterm blueprint tree app app:api,web api:db`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			children, err := parseEdges(args[1:])
			if err != nil {
				return err
			}
			return emit(cmd, templates.Tree(args[0], children))
		},
	})

	var cols, rows, cellW, cellH int
	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "A grid of empty cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return emit(cmd, templates.GridLayout(cols, rows, cellW, cellH))
		},
	}
	gridCmd.Flags().IntVar(&cols, "cols", 3, "columns")
	gridCmd.Flags().IntVar(&rows, "rows", 2, "rows")
	gridCmd.Flags().IntVar(&cellW, "cell-width", 12, "cell width")
	gridCmd.Flags().IntVar(&cellH, "cell-height", 4, "cell height")
	cmd.AddCommand(gridCmd)

	var width int
	formCmd := &cobra.Command{
		Use:   "form <title> [field...]",
		Short: "A titled form with labelled inputs and a submit button",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emit(cmd, templates.Form(args[0], args[1:], width))
		},
	}
	formCmd.Flags().IntVar(&width, "width", 30, "form width")
	cmd.AddCommand(formCmd)

	return cmd
}

// parseEdges reads "parent:child,child" arguments.
func parseEdges(args []string) (map[string][]string, error) {
	edges := make(map[string][]string)
	for _, arg := range args {
		parent, kids, ok := strings.Cut(arg, ":")
		if !ok || parent == "" {
			return nil, fmt.Errorf("bad edge %q: want parent:child,child", arg)
		}
		for _, k := range strings.Split(kids, ",") {
			if k = strings.TrimSpace(k); k != "" {
				edges[parent] = append(edges[parent], k)
			}
		}
	}
	return edges, nil
}
