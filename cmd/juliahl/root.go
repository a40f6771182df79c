package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"juliahl/highlight"
	"juliahl/internal/config"
	"juliahl/internal/lang"
	"juliahl/internal/readfile"
	"juliahl/internal/render"
)

type options struct {
	configFile string
	dump       bool
	verbose    bool
	noRainbow  bool
	noUnmatch  bool
}

// source is one input, already read and normalised.
type source struct {
	name string
	text string
	lang lang.ID
}

type dumpDoc struct {
	File        string                 `yaml:"file"`
	Annotations []highlight.Annotation `yaml:"annotations"`
	Diagnostics []highlight.Diagnostic `yaml:"diagnostics,omitempty"`
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "juliahl [files...]",
		Short: "Highlight Julia source in the terminal",
		Long: `juliahl prints Julia source with syntax highlighting, rainbow
delimiters and unmatched delimiter marking. With no files, or "-", it
reads standard input.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, &opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.configFile, "config", "c", "",
		"config file (default: .juliahl.yaml or ~/.config/juliahl/config.yaml)")
	pf.Bool("syntax-errors", false, "mark syntax errors with julia_error")
	pf.BoolVar(&opts.noRainbow, "no-rainbow", false, "use julia_parentheses for every delimiter")
	pf.BoolVar(&opts.noUnmatch, "no-unmatched", false, "do not mark unpaired delimiters")
	pf.Int("max-depth", 0, "number of rainbow faces per delimiter family")
	pf.String("theme", "", "chroma style to take colours from (for example: dracula, monokai, nord)")
	pf.String("parser", "", "parser backend: juliasyntax or treesitter")
	pf.String("color", "", "colour output: auto, always or never")
	pf.Int("width", 0, "truncate lines to this many columns (0 disables)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "report diagnostics on stderr")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print annotations as YAML instead of rendering")

	cmd.AddCommand(newWatchCmd(&opts), newFacesCmd(&opts), newConfigCmd(&opts))
	return cmd
}

// loadConfig reads the config file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("syntax-errors") {
		cfg.SyntaxErrors, _ = flags.GetBool("syntax-errors")
	}
	if opts.noRainbow {
		cfg.Rainbow = false
	}
	if opts.noUnmatch {
		cfg.Unmatched = false
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth, _ = flags.GetInt("max-depth")
	}
	if flags.Changed("theme") {
		cfg.Theme, _ = flags.GetString("theme")
	}
	if flags.Changed("parser") {
		cfg.Parser, _ = flags.GetString("parser")
	}
	if flags.Changed("color") {
		cfg.Color, _ = flags.GetString("color")
	}
	if flags.Changed("width") {
		cfg.Width, _ = flags.GetInt("width")
	}
	return cfg, cfg.Validate()
}

func newRenderer(cmd *cobra.Command, cfg config.Config, hl *highlight.Highlighter) (*render.Renderer, error) {
	mode, err := render.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}
	return render.New(hl.Faces(), render.Options{
		Width:  cfg.Width,
		Color:  mode,
		Output: cmd.OutOrStdout(),
	}), nil
}

func runHighlight(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	hl, err := cfg.Highlighter()
	if err != nil {
		return err
	}
	r, err := newRenderer(cmd, cfg, hl)
	if err != nil {
		return err
	}

	sources, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	pool := highlight.NewPool(highlight.PoolConfig{Workers: cfg.Workers, Highlighter: hl})
	defer pool.Close()

	reqs := make([]highlight.Request, 0, len(sources))
	julia := make([]source, 0, len(sources))
	slot := make([]int, len(sources))
	for i, src := range sources {
		slot[i] = -1
		if src.lang != lang.Julia {
			if opts.verbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: not Julia source, printing as is\n", src.name)
			}
			continue
		}
		slot[i] = len(reqs)
		julia = append(julia, src)
		reqs = append(reqs, highlight.Request{Text: src.text, SyntaxErrors: cfg.SyntaxErrors})
	}

	results, err := pool.Do(cmd.Context(), reqs)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.dump {
		return dump(out, julia, results)
	}

	for i, src := range sources {
		if len(sources) > 1 {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "==> %s <==\n", src.name)
		}
		if slot[i] < 0 {
			fmt.Fprint(out, src.text)
			continue
		}
		res := results[slot[i]]
		if opts.verbose {
			reportDiagnostics(cmd.ErrOrStderr(), src.name, res.Diagnostics)
		}
		fmt.Fprint(out, r.Render(src.text, res.Annotations))
	}
	return nil
}

func readSources(stdin io.Reader, args []string) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	sources := make([]source, 0, len(args))
	for _, arg := range args {
		if arg == "-" {
			text, err := readfile.ReadAllNormalized(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			sources = append(sources, source{name: "<stdin>", text: text, lang: lang.Julia})
			continue
		}

		text, err := readfile.ReadNormalized(arg)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source{
			name: arg,
			text: text,
			lang: lang.DetectWithShebang(arg, readfile.FirstLine(text)),
		})
	}
	return sources, nil
}

func dump(w io.Writer, sources []source, results []highlight.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for i, src := range sources {
		doc := dumpDoc{
			File:        src.name,
			Annotations: results[i].Annotations,
			Diagnostics: results[i].Diagnostics,
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding annotations for %s: %w", src.name, err)
		}
	}
	return enc.Close()
}

func reportDiagnostics(w io.Writer, name string, diags []highlight.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", name, d)
	}
}
