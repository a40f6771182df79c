package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"juliahl/highlight"
	"juliahl/internal/readfile"
	"juliahl/internal/watch"
)

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

func newWatchCmd(opts *options) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-highlight a file every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			pool := highlight.NewPool(highlight.PoolConfig{Workers: cfg.Workers, Highlighter: hl})
			defer pool.Close()

			path := args[0]
			w, err := watch.New(watch.Config{
				Path:     path,
				Debounce: debounce,
				OnEvent:  func() { prewarm(pool, path, cfg.SyntaxErrors) },
			})
			if err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			changes, err := w.Start()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			show := func() {
				text, err := readfile.ReadNormalized(path)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "reading %s: %v\n", path, err)
					return
				}
				res, err := pool.Do(cmd.Context(), []highlight.Request{{Text: text, SyntaxErrors: cfg.SyntaxErrors}})
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "highlighting %s: %v\n", path, err)
					return
				}
				s, err := res[0].Annotated(text)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "highlighting %s: %v\n", path, err)
					return
				}
				fmt.Fprint(out, clearScreen)
				fmt.Fprint(out, r.RenderString(s))
			}

			show()
			for {
				select {
				case <-changes:
					show()
				case err := <-w.Errors():
					if opts.verbose {
						fmt.Fprintf(cmd.ErrOrStderr(), "watching %s: %v\n", path, err)
					}
				case <-cmd.Context().Done():
					return nil
				}
			}
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "wait this long after the last write before re-rendering")
	return cmd
}

// prewarm queues the current contents of path so the debounced render
// usually finds them cached. Read errors are left to the render.
func prewarm(pool *highlight.Pool, path string, syntaxErrors bool) {
	text, err := readfile.ReadNormalized(path)
	if err != nil {
		return
	}
	pool.Queue(highlight.Request{Text: text, SyntaxErrors: syntaxErrors})
}
