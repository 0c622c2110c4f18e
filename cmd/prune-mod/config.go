package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/naiplawan/prunemod/internal/logger"
	"github.com/naiplawan/prunemod/internal/prune"
)

const (
	configName = "prune-mod"
	envPrefix  = "PRUNE_MOD"
)

// Viper keys. Flags are bound to the same names with "_" instead of "-".
const (
	keyDir                      = "dir"
	keyVerbose                  = "verbose"
	keyExclude                  = "exclude"
	keyInclude                  = "include"
	keyDryRun                   = "dry_run"
	keyExtensions               = "extensions"
	keyDirectories              = "directories"
	keyFiles                    = "files"
	keyWorkspace                = "workspace"
	keyWorkspaceRoot            = "workspace_root"
	keyNoRoot                   = "no_root"
	keyExperimentalDefaultFiles = "experimental_default_files"
	keyNoProgress               = "no_progress"
	keyDirectoryConcurrency     = "directory_concurrency"
	keyStatConcurrency          = "stat_concurrency"
	keySizeConcurrency          = "size_concurrency"
	keyRemovalConcurrency       = "removal_concurrency"
)

// config is the merged result of defaults, config file, environment and flags.
type config struct {
	Dir        string
	Verbose    bool
	DryRun     bool
	NoProgress bool

	Exclude []string
	Include []string

	// nil unless set explicitly
	Extensions  []string
	Directories []string
	Files       []string

	Workspace                bool
	WorkspaceRoot            string
	NoRoot                   bool
	ExperimentalDefaultFiles bool

	DirectoryConcurrency int
	StatConcurrency      int
	SizeConcurrency      int
	RemovalConcurrency   int
}

// readConfigFile loads the config file named by path, or searches the
// working directory and $HOME/.config/prune-mod. A missing file is not an
// error.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	return nil
}

func setupEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// loadConfig reads every key out of v. args are the positional arguments;
// the first one overrides the directory.
func loadConfig(cmd *cobra.Command, v *viper.Viper, args []string) config {
	cfg := config{
		Dir:                      v.GetString(keyDir),
		Verbose:                  v.GetBool(keyVerbose),
		DryRun:                   v.GetBool(keyDryRun),
		NoProgress:               v.GetBool(keyNoProgress),
		Exclude:                  globList(cmd, v, keyExclude),
		Include:                  globList(cmd, v, keyInclude),
		Workspace:                v.GetBool(keyWorkspace),
		WorkspaceRoot:            v.GetString(keyWorkspaceRoot),
		NoRoot:                   v.GetBool(keyNoRoot),
		ExperimentalDefaultFiles: v.GetBool(keyExperimentalDefaultFiles),
		DirectoryConcurrency:     v.GetInt(keyDirectoryConcurrency),
		StatConcurrency:          v.GetInt(keyStatConcurrency),
		SizeConcurrency:          v.GetInt(keySizeConcurrency),
		RemovalConcurrency:       v.GetInt(keyRemovalConcurrency),
	}
	if len(args) > 0 && args[0] != "" {
		cfg.Dir = args[0]
	}
	if cfg.Dir == "" {
		cfg.Dir = prune.DefaultDir
	}

	// Overrides replace the built-in tables, so only pass them on when given
	if v.IsSet(keyExtensions) {
		cfg.Extensions = nonNil(stringList(v, keyExtensions))
	}
	if v.IsSet(keyDirectories) {
		cfg.Directories = nonNil(stringList(v, keyDirectories))
	}
	if v.IsSet(keyFiles) {
		cfg.Files = nonNil(stringList(v, keyFiles))
	}
	return cfg
}

// options maps the CLI configuration onto the library options.
func (c config) options(log *logger.Logger) prune.Options {
	return prune.Options{
		Dir:                  c.Dir,
		Verbose:              c.Verbose,
		DryRun:               c.DryRun,
		Exceptions:           c.Exclude,
		Globs:                c.Include,
		Extensions:           c.Extensions,
		Directories:          c.Directories,
		Files:                c.Files,
		Workspace:            c.Workspace,
		WorkspaceRoot:        c.WorkspaceRoot,
		IncludeRoot:          prune.Bool(!c.NoRoot),
		Experimental:         prune.Experimental{DefaultFiles: c.ExperimentalDefaultFiles},
		DirectoryConcurrency: c.DirectoryConcurrency,
		StatConcurrency:      c.StatConcurrency,
		SizeConcurrency:      c.SizeConcurrency,
		RemovalConcurrency:   c.RemovalConcurrency,
		Logger:               log,
	}
}

// stringList accepts lists from flags and config files as well as comma
// separated strings from the environment. Only used for plain names, never
// for globs.
func stringList(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// globList returns glob patterns without splitting on commas, which are
// part of brace expressions such as *.{md,txt}. Repeated flags win over
// config and environment. The flag name must equal key.
func globList(cmd *cobra.Command, v *viper.Viper, key string) []string {
	values := v.GetStringSlice(key)
	if f := cmd.Flags().Lookup(key); f != nil && f.Changed {
		values, _ = cmd.Flags().GetStringArray(key)
	}
	var out []string
	for _, glob := range values {
		if glob = strings.TrimSpace(glob); glob != "" {
			out = append(out, glob)
		}
	}
	return out
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
