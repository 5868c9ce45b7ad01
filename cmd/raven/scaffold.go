package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	raven "github.com/alnah/go-raven"
	"github.com/alnah/go-raven/internal/assets"
	"github.com/alnah/go-raven/internal/config"
	"github.com/alnah/go-raven/internal/fileutil"
	"github.com/alnah/go-raven/internal/logging"
)

// runInitCmd initializes a project in an existing or new directory.
func runInitCmd(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags("init", args, env.Stderr)
	if err != nil {
		return err
	}
	dir, err := projectDir("init", positional)
	if err != nil {
		return err
	}
	return scaffoldProject(dir, raven.DefaultConfig(), flags, env)
}

// runNewCmd creates a directory and initializes a project in it.
func runNewCmd(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags("new", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: new takes exactly one name, got %d", errUsage, len(positional))
	}

	cfg := raven.DefaultConfig()
	if flags.dirs.source != "" {
		cfg.Source = flags.dirs.source
	}
	if flags.dirs.dest != "" {
		cfg.Dest = flags.dirs.dest
	}
	if flags.dirs.syntaxes != "" {
		cfg.Syntaxes = flags.dirs.syntaxes
	}
	if flags.dirs.syntaxThemes != "" {
		cfg.CustomSyntaxThemes = flags.dirs.syntaxThemes
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return scaffoldProject(positional[0], cfg, flags, env)
}

// scaffoldProject writes raven.yaml, the project directories and the
// default template, stylesheet, favicon and starter page. An existing
// raven.yaml leaves the project untouched. Existing asset files are kept.
func scaffoldProject(dir string, cfg *raven.Config, flags *initFlags, env *Environment) error {
	opts := logging.Options{NoColor: loadEnvConfig(env.Getenv).NoColor}
	if flags.quiet {
		opts.Level = slog.LevelError
	}
	logger := logging.New(env.Stderr, opts)

	cfgPath := filepath.Join(dir, raven.ConfigFileName)
	if fileutil.FileExists(cfgPath) {
		logger.Info("project already initialized", logging.Path(cfgPath))
		return nil
	}

	resolver, err := assets.NewAssetResolver(flags.scaffold)
	if err != nil {
		return fmt.Errorf("%w: --scaffold: %w", errUsage, err)
	}

	for _, d := range []string{cfg.Source, cfg.Dest, cfg.Syntaxes, cfg.CustomSyntaxThemes} {
		if err := os.MkdirAll(inProject(dir, d), fileutil.DirPermissions); err != nil {
			return fmt.Errorf("%w: %w", raven.ErrIO, err)
		}
	}

	files := []struct {
		asset string
		dest  string
	}{
		{assets.TemplateFile, inProject(dir, cfg.Defaults.Template)},
		{assets.StylesheetFile, inProject(dir, cfg.Defaults.Stylesheet)},
		{assets.FaviconFile, inProject(dir, cfg.Defaults.Favicon)},
		{assets.StarterFile, filepath.Join(inProject(dir, cfg.Source), assets.StarterFile)},
	}
	for _, f := range files {
		written, err := writeAsset(resolver, f.asset, f.dest)
		if err != nil {
			return err
		}
		if written {
			logger.Debug("wrote file", logging.Path(f.dest))
		}
	}

	data, err := config.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("%w: %w", raven.ErrInvalidConfig, err)
	}
	if err := fileutil.WriteFile(cfgPath, data); err != nil {
		return fmt.Errorf("%w: %w", raven.ErrIO, err)
	}

	logger.Info("initialized project", logging.Path(dir))
	return nil
}

// writeAsset copies the named scaffold file to dest unless dest exists.
func writeAsset(resolver *assets.AssetResolver, name, dest string) (bool, error) {
	if _, err := os.Lstat(dest); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("%w: %w", raven.ErrIO, err)
	}

	content, err := resolver.Load(name)
	if err != nil {
		return false, fmt.Errorf("%w: %s: %w", raven.ErrIO, name, err)
	}
	if err := fileutil.WriteFile(dest, content); err != nil {
		return false, fmt.Errorf("%w: %w", raven.ErrIO, err)
	}
	return true, nil
}

func inProject(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
