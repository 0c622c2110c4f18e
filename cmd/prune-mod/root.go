package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naiplawan/prunemod/internal/diskusage"
	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/prune"
)

const examples = `  prune-mod                                  # Prune node_modules in current directory
  prune-mod ./my-project/node_modules
  prune-mod --exclude "*.config.js"
  prune-mod --include "*.log" --include "*.tmp"
  prune-mod --workspace --workspace-root ./monorepo
  prune-mod --extensions .md,.map --directories test,docs`

func newRootCmd() *cobra.Command {
	return newCommand(viper.New(), run)
}

// newCommand builds the root command around v; action receives the merged
// configuration.
func newCommand(v *viper.Viper, action func(*cobra.Command, config) error) *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:          "prune-mod [directory]",
		Short:        "Remove unnecessary files from node_modules",
		Long:         "prune-mod deletes tests, docs, configs and other files that installed packages do not need at runtime.",
		Example:      examples,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			setupEnv(v)
			return readConfigFile(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return action(cmd, loadConfig(cmd, v, args))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./prune-mod.yaml or $HOME/.config/prune-mod/prune-mod.yaml)")
	flags.BoolP("verbose", "v", false, "Verbose log output")
	flags.StringArray("exclude", nil, "Glob of files that should not be pruned (repeatable)")
	flags.StringArray("include", nil, "Glob of files that should always be pruned (repeatable)")
	flags.BoolP("dry-run", "d", false, "Show what would be pruned without removing files")
	flags.StringSlice("extensions", nil, "Replace the default extension list (comma-separated)")
	flags.StringSlice("directories", nil, "Replace the default directory list (comma-separated)")
	flags.StringSlice("files", nil, "Replace the default file list (comma-separated)")
	flags.BoolP("workspace", "w", false, "Prune every package of the enclosing monorepo")
	flags.String("workspace-root", "", "Directory to start workspace detection from (default: the target directory)")
	flags.Bool("no-root", false, "In workspace mode, skip the hoisted root node_modules")
	flags.Bool("experimental-default-files", false, "Also prune build configs, env examples, CI and docs files")
	flags.Bool("no-progress", false, "Disable the live progress view")

	for key, name := range map[string]string{
		keyVerbose:                  "verbose",
		keyExclude:                  "exclude",
		keyInclude:                  "include",
		keyDryRun:                   "dry-run",
		keyExtensions:               "extensions",
		keyDirectories:              "directories",
		keyFiles:                    "files",
		keyWorkspace:                "workspace",
		keyWorkspaceRoot:            "workspace-root",
		keyNoRoot:                   "no-root",
		keyExperimentalDefaultFiles: "experimental-default-files",
		keyNoProgress:               "no-progress",
	} {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(name)))
	}
	v.SetDefault(keyDir, prune.DefaultDir)

	return cmd
}

func run(cmd *cobra.Command, cfg config) error {
	log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg.Verbose)

	pruner, err := prune.New(cfg.options(log))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	before, diskErr := diskusage.For(pruner.Dir())
	if diskErr != nil {
		log.Debug("Disk usage unavailable: %v", diskErr)
	}

	start := time.Now()
	var stats prune.Stats
	if useProgress(cfg, cmd.OutOrStdout()) {
		stats, err = runWithProgress(ctx, pruner, cmd.OutOrStdout())
	} else {
		stats, err = pruner.Prune(ctx)
	}
	if err != nil {
		return err
	}

	s := summary{
		Stats:    stats,
		Duration: time.Since(start),
		DryRun:   cfg.DryRun,
	}
	if diskErr == nil {
		s.DiskBefore = &before
		if after, err := diskusage.For(pruner.Dir()); err == nil {
			s.DiskAfter = &after
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), s.render())
	if cfg.DryRun {
		log.Warn("Dry run: nothing was removed")
	}
	return nil
}

// useProgress reports whether the live view can draw on out. Anything that
// is not a terminal gets the plain summary only.
func useProgress(cfg config, out io.Writer) bool {
	if cfg.NoProgress || cfg.Verbose {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
