package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/bookgen/internal/book"
	"git.home.luguber.info/inful/bookgen/internal/config"
	"git.home.luguber.info/inful/bookgen/internal/metrics"
	"git.home.luguber.info/inful/bookgen/internal/watch"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"bookgen.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Generate struct {
		Src  string `arg:"" help:"Compiler source tree root"`
		Dest string `arg:"" help:"Destination root for the generated book"`
	} `cmd:"" help:"Generate stub pages for undocumented unstable features, mirror the book source and render SUMMARY.md"`

	Watch struct {
		Src         string `arg:"" help:"Compiler source tree root"`
		Dest        string `arg:"" help:"Destination root for the generated book"`
		MetricsAddr string `help:"Serve /metrics and /healthz on this address (overrides config)"`
	} `cmd:"" help:"Regenerate the book whenever feature declarations or book sources change"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`
}

func main() {
	ctx := kong.Parse(&CLI)

	// Set up logging
	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	switch ctx.Command() {
	case "generate <src> <dest>":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runGenerate(cfg, CLI.Generate.Src, CLI.Generate.Dest); err != nil {
			slog.Error("Generate failed", "error", err)
			os.Exit(1)
		}
	case "watch <src> <dest>":
		cfg, err := config.Load(CLI.Config)
		if err != nil {
			slog.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}
		if err := runWatch(cfg, CLI.Watch.Src, CLI.Watch.Dest, CLI.Watch.MetricsAddr); err != nil {
			slog.Error("Watch failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
	}
}

func runGenerate(cfg *config.Config, src, dest string) error {
	slog.Info("Starting book generation", "src", src, "dest", dest)

	report, err := book.Generate(context.Background(), cfg, src, dest)
	if err != nil {
		return err
	}

	slog.Info("Generation complete",
		slog.Int("stubs", report.LangStubs+report.LibStubs),
		slog.Int("lang_features", report.LangFeatures),
		slog.Int("lib_features", report.LibFeatures))
	return nil
}

func runWatch(cfg *config.Config, src, dest, metricsAddr string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if metricsAddr == "" {
		metricsAddr = cfg.Watch.MetricsAddr
	}
	if metricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, metricsAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Metrics server failed", "error", err)
			}
		}()
		slog.Info("Serving metrics", "addr", metricsAddr)
	}

	buildFn := func(ctx context.Context) error {
		report, err := book.Generate(ctx, cfg, src, dest)
		if err != nil {
			return err
		}
		metrics.LastBuildStubs.Set(float64(report.LangStubs + report.LibStubs))
		return nil
	}

	// The gate file is watched through its parent directory; the book source
	// and library roots are watched at the top level only, which covers the
	// common edit points (section files and lib crate roots).
	paths := []string{
		filepath.Join(src, cfg.Features.GateFile),
		filepath.Join(src, cfg.Book.SourceDir),
		filepath.Join(src, cfg.Book.SourceDir, cfg.Book.LangFeaturesDir),
		filepath.Join(src, cfg.Book.SourceDir, cfg.Book.LibFeaturesDir),
		filepath.Join(src, cfg.Book.SourceDir, cfg.Book.CompilerFlagsDir),
	}
	for _, root := range cfg.Features.LibRoots {
		paths = append(paths, filepath.Join(src, root))
	}

	w := watch.New(paths, cfg.DebounceDuration(), buildFn)
	return w.Run(ctx, cfg.ResyncDuration())
}
