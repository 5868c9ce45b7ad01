package main

import (
	raven "github.com/alnah/go-raven"
	"github.com/alnah/go-raven/internal/logging"
)

// runCleanCmd removes the destination directory of a project.
func runCleanCmd(args []string, env *Environment) error {
	flags, positional, err := parseCleanFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	dir, err := projectDir("clean", positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadProjectConfig(dir, flags.common.config, envCfg)
	if err != nil {
		return err
	}

	if err := raven.Clean(cfg, dir); err != nil {
		return err
	}
	newLogger(env, &flags.common, envCfg).Info("removed destination", logging.Path(cfg.Dest))
	return nil
}
