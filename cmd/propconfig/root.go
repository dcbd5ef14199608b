/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suparena/propconfig"
	"github.com/suparena/propconfig/codec"
	"github.com/suparena/propconfig/registry"
	"github.com/suparena/propconfig/store"
)

const (
	defaultSettingsFile = "propconfig.json"
	envPrefix           = "PROPCONFIG"
)

// app holds what the commands share.
type app struct {
	v         *viper.Viper
	cfg       *propconfig.Config
	logger    zerolog.Logger
	openStore func(ctx context.Context) (*store.Store, error)
}

func newApp(cfg *propconfig.Config) *app {
	a := &app{
		v:      viper.New(),
		cfg:    cfg,
		logger: zerolog.Nop(),
	}
	a.openStore = a.dynamoStore
	return a
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "propconfig",
		Short: "Inspect and manage property library settings",
		Long: `propconfig reads and writes the settings of the property library.

Settings live in a JSON (or YAML) file, propconfig.json by default. Commands that
change a setting write the file back. Named profiles can be saved to and loaded
from a DynamoDB table.

Tool options come from flags, PROPCONFIG_* environment variables, a .env file
and an optional .propconfig.yaml file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("file", defaultSettingsFile, "settings file (.json, .yaml or .yml)")
	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error, disabled)")
	_ = a.v.BindPFlag("file", root.PersistentFlags().Lookup("file"))
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		newKeysCmd(a),
		newDescribeCmd(a),
		newGetCmd(a),
		newSetCmd(a),
		newShowCmd(a),
		newApplyCmd(a),
		newSchemaCmd(),
		newWatchCmd(a),
		newSaveCmd(a),
		newLoadCmd(a),
		newProfilesCmd(a),
		newDeleteCmd(a),
		newVersionCmd(),
	)
	return root
}

// init loads tool options, sets up logging and reads the settings file.
func (a *app) init(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindEnv("aws.region", envPrefix+"_AWS_REGION", "AWS_REGION")
	_ = a.v.BindEnv("aws.table", envPrefix+"_AWS_TABLE", "AWS_DDB_TABLE")
	_ = a.v.BindEnv("aws.access_key", envPrefix+"_AWS_ACCESS_KEY", "AWS_ACCESS_KEY")
	_ = a.v.BindEnv("aws.secret_key", envPrefix+"_AWS_SECRET_KEY", "AWS_SECRET_KEY")
	a.v.SetDefault("aws.region", "us-east-1")

	a.v.SetConfigName(".propconfig")
	a.v.SetConfigType("yaml")
	a.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		a.v.AddConfigPath(home)
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return fmt.Errorf("failed to read tool config: %w", err)
		}
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.v.GetString("log_level"))
	if err != nil {
		return err
	}
	a.logger = logger
	cmd.SetContext(logger.WithContext(cmd.Context()))

	switch cmd.Name() {
	case "keys", "schema", "version", "help":
		return nil
	}
	return a.loadSettings()
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().
		Logger(), nil
}

func (a *app) settingsPath() string {
	return a.v.GetString("file")
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decoderFor returns a decode step for data in the format implied by path.
func decoderFor(path string, data []byte) func(r *registry.Registry) error {
	if isYAML(path) {
		return func(r *registry.Registry) error { return codec.DecodeYAML(r, data) }
	}
	return func(r *registry.Registry) error { return codec.DecodeBytes(r, data) }
}

// loadSettings applies the settings file, if present, all or nothing.
func (a *app) loadSettings() error {
	path := a.settingsPath()
	data, err := os.ReadFile(path)
	if stderrors.Is(err, os.ErrNotExist) {
		a.logger.Debug().Str("file", path).Msg("no settings file, using defaults")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := a.cfg.Apply(decoderFor(path, data)); err != nil {
		return fmt.Errorf("failed to apply %s: %w", path, err)
	}
	a.logger.Debug().Str("file", path).Msg("settings file loaded")
	return nil
}

// saveSettings writes the configuration to the settings file by replacing it.
func (a *app) saveSettings() error {
	path := a.settingsPath()

	var data []byte
	err := a.cfg.View(func(r *registry.Registry) error {
		var err error
		if isYAML(path) {
			data, err = codec.EncodeYAML(r)
		} else {
			data, err = codec.EncodeIndent(r, "  ")
		}
		return err
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".propconfig-*")
	if err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	a.logger.Debug().Str("file", path).Msg("settings file written")
	return nil
}
