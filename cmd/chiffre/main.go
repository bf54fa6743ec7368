// chiffre - French numeral and duration resolver
//
// Usage:
//
//	chiffre numeral [text...]                  Resolve a spelled-out number
//	chiffre duration [--canonical] [text...]   Resolve a duration phrase
//	chiffre batch --kind K [file]              Resolve every line of a file
//	chiffre serve [--addr host:port]           Run the HTTP API
//	chiffre version                            Print version info
//
// Without text arguments, numeral and duration read one phrase per stdin line.
// Without a file (or with "-"), batch reads stdin.
//
// Settings come from CHIFFRE_* environment variables or a .env file; flags
// override them.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/Neumenon/chiffre/chiffre"
	"github.com/Neumenon/chiffre/internal/config"
	"github.com/Neumenon/chiffre/internal/resolve"
)

const libVersion = "0.1.0"

type app struct {
	cfg      *config.Config
	resolver *resolve.Resolver

	strict  bool
	workers int
	verbose bool
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "chiffre",
		Short:         "resolve French numerals and durations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&a.strict, "strict", false, "reject words outside the vocabulary")
	rootCmd.PersistentFlags().IntVar(&a.workers, "workers", 0, "batch parallelism (default from CHIFFRE_BATCH_WORKERS)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log to the console")

	rootCmd.AddCommand(
		a.numeralCmd(),
		a.durationCmd(),
		a.batchCmd(),
		a.serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "chiffre: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("strict") {
		cfg.Resolve.Strict = a.strict
	}
	if a.workers > 0 {
		cfg.Resolve.BatchWorkers = a.workers
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// One-shot commands print results on stdout; keep the console for them
	// unless asked.
	console := cfg.Log.Console && (cmd.Name() == "serve" || a.verbose)
	logger.Init(
		cfg.Log.File,
		cfg.Log.Level,
		cfg.Log.FileCount,
		cfg.Log.FileSize,
		cfg.Log.KeepDays,
		console,
	)

	a.cfg = cfg
	a.resolver = resolve.New(
		resolve.WithCache(cfg.Resolve.CacheSize, cfg.Resolve.CacheTTL),
		resolve.WithWorkers(cfg.Resolve.BatchWorkers),
		resolve.WithStrict(cfg.Resolve.Strict),
	)
	logutil.GetLogger(context.Background()).Debug("config loaded",
		zap.String("command", cmd.Name()),
		zap.Bool("strict", cfg.Resolve.Strict),
		zap.Int("workers", cfg.Resolve.BatchWorkers),
	)
	return nil
}

func (a *app) numeralCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "numeral [text...]",
		Short: "resolve a spelled-out number",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachPhrase(cmd, args, func(ctx context.Context, text string) (string, error) {
				v, err := a.resolver.Numeral(ctx, text)
				if err != nil {
					return "", err
				}
				return chiffre.CanonicalNumber(v), nil
			})
		},
	}
}

func (a *app) durationCmd() *cobra.Command {
	var canonical bool
	cmd := &cobra.Command{
		Use:   "duration [text...]",
		Short: "resolve a duration phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.eachPhrase(cmd, args, func(ctx context.Context, text string) (string, error) {
				v, err := a.resolver.Resolve(ctx, resolve.KindDuration, text)
				if err != nil {
					return "", err
				}
				if canonical {
					return v.Canonical, nil
				}
				return v.Duration.String(), nil
			})
		},
	}
	cmd.Flags().BoolVar(&canonical, "canonical", false, "print the canonical French phrase")
	return cmd
}

// eachPhrase resolves the joined arguments, or every non-blank stdin line
// when there are none. Lines are echoed before their value.
func (a *app) eachPhrase(cmd *cobra.Command, args []string, resolveFn func(context.Context, string) (string, error)) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if len(args) > 0 {
		v, err := resolveFn(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		fmt.Fprintln(out, v)
		return nil
	}

	lines, err := readLines(cmd.InOrStdin())
	if err != nil {
		return err
	}
	failed := 0
	for _, line := range lines {
		v, err := resolveFn(ctx, line)
		if err != nil {
			failed++
			fmt.Fprintf(out, "%s\terror: %v\n", line, err)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", line, v)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d phrases failed", failed, len(lines))
	}
	return nil
}

func (a *app) batchCmd() *cobra.Command {
	var kindFlag string
	cmd := &cobra.Command{
		Use:   "batch --kind numeral|duration [file]",
		Short: "resolve every line of a file concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := resolve.ParseKind(kindFlag)
			if err != nil {
				return err
			}

			var input io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open file: %w", err)
				}
				defer f.Close()
				input = f
			}
			lines, err := readLines(input)
			if err != nil {
				return err
			}

			results, err := a.resolver.Batch(cmd.Context(), kind, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(out, "%s\terror: %v\n", res.Text, res.Err)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", res.Text, res.Value.Canonical)
			}
			logutil.GetLogger(cmd.Context()).Info("batch done",
				zap.String("kind", string(kind)),
				zap.Int("total", len(results)),
				zap.Int("failed", failed),
			)
			return nil
		},
	}
	cmd.Flags().StringVar(&kindFlag, "kind", "duration", "phrase kind: numeral or duration")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version info",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chiffre %s\n", libVersion)
		},
	}
}

// readLines returns the trimmed non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}
