package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	raven "github.com/alnah/go-raven"
	"github.com/alnah/go-raven/internal/logging"
)

// runBuildCmd builds the project named on the command line. Pages that
// fail are logged and do not change the exit code; only failures that stop
// the whole build do.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	dir, err := projectDir("build", positional)
	if err != nil {
		return err
	}
	if flags.workersSet && (flags.workers < 0 || flags.workers > raven.MaxWorkers) {
		return fmt.Errorf("%w: --workers must be between 0 and %d, got %d", errUsage, raven.MaxWorkers, flags.workers)
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadProjectConfig(dir, flags.common.config, envCfg)
	if err != nil {
		return err
	}

	logger := newLogger(env, &flags.common, envCfg)
	opts := []raven.Option{raven.WithLogger(logger)}

	switch {
	case flags.workersSet:
		opts = append(opts, raven.WithWorkers(flags.workers))
	case envCfg.Workers > 0:
		opts = append(opts, raven.WithWorkers(min(envCfg.Workers, raven.MaxWorkers)))
	}

	var progress *progressLine
	if showProgress(env, &flags.common, envCfg) {
		progress = newProgressLine(env.Stderr, flags.common.noColor || envCfg.NoColor)
		opts = append(opts, raven.WithProgress(progress.Update))
	}

	site, err := raven.New(cfg, dir, opts...)
	if err != nil {
		return withThemeHint(err, dir, cfg)
	}

	report, err := site.Run(ctx, flags.rebuildAll)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		return err
	}

	if !report.OK() {
		logger.Warn("some pages failed", logging.Count(len(report.Failed)))
	}
	return nil
}

// loadProjectConfig reads the configuration of the project in dir. The
// path comes from --config, then RAVEN_CONFIG, then raven.yaml, and a
// relative path resolves against dir.
func loadProjectConfig(dir, flagPath string, envCfg *envConfig) (*raven.Config, error) {
	return raven.LoadConfig(configPath(dir, flagPath, envCfg))
}

func configPath(dir, flagPath string, envCfg *envConfig) string {
	p := flagPath
	if p == "" {
		p = envCfg.ConfigPath
	}
	if p == "" {
		p = raven.ConfigFileName
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// newLogger builds the CLI logger on stderr from the output flags.
func newLogger(env *Environment, f *commonFlags, envCfg *envConfig) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return logging.New(env.Stderr, logging.Options{
		Level:   level,
		JSON:    f.json || envCfg.LogFormat == "json",
		NoColor: f.noColor || envCfg.NoColor,
	})
}

// showProgress reports whether a progress line fits the chosen output.
// Verbose and JSON logs already describe every page.
func showProgress(env *Environment, f *commonFlags, envCfg *envConfig) bool {
	if f.quiet || f.verbose || f.json || envCfg.LogFormat == "json" {
		return false
	}
	return env.Terminal != nil && env.Terminal(env.Stderr)
}
