// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/woozymasta/hrx"
	"github.com/woozymasta/hrx/internal/config"
)

// app holds state shared by all commands of one invocation.
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	out     io.Writer
	cfgFile string
}

// newRootCmd builds command tree bound to a.
func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "hrx",
		Short: "Work with HRX human readable archives",
		Long: `hrx lists, extracts, packs and deletes entries of HRX archives.

An HRX archive is a plain UTF-8 file where each entry starts with a
boundary line like "<===> path/to/file".`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/hrx/config.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.Bool("allow-unregistered", false, "run pack and delete without a progress callback")

	root.AddCommand(
		newListCmd(a),
		newExtractCmd(a),
		newPackCmd(a),
		newDeleteCmd(a),
		newTestCmd(a),
		newCapsCmd(a),
	)

	return root
}

// setup loads config and binds flags set on cmd.
func (a *app) setup(cmd *cobra.Command) error {
	v, path, err := config.New(config.LoadOptions{ConfigFile: a.cfgFile})
	if err != nil {
		return err
	}

	for key, name := range map[string]string{
		"log_level":             "log-level",
		"allow_unregistered":    "allow-unregistered",
		"output":                "output",
		"pack.include":          "include",
		"pack.exclude":          "exclude",
		"pack.case_insensitive": "ignore-case",
	} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	cfg, err := config.Decode(v)
	if err != nil {
		return err
	}

	a.cfg = cfg
	if a.out == nil {
		a.out = cmd.OutOrStdout()
	}
	a.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Prefix: "hrx",
		Level:  cfg.Level(),
	})
	if path != "" {
		a.logger.Debug("config loaded", "path", path)
	}

	return nil
}

// progress returns registry whose callback logs items and stops on ctx end.
func (a *app) progress(cmd *cobra.Command) *hrx.Progress {
	p := hrx.NewProgress(hrx.ProgressOptions{AllowUnregistered: a.cfg.AllowUnregistered})
	if a.cfg.AllowUnregistered {
		return p
	}

	ctx := cmd.Context()
	_ = p.Set(hrx.CallbackText, func(name string, size int64) bool {
		a.logger.Info(name, "bytes", size)
		return ctx == nil || ctx.Err() == nil
	})

	return p
}
