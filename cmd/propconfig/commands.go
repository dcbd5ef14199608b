/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suparena/propconfig"
	"github.com/suparena/propconfig/codec"
	"github.com/suparena/propconfig/keys"
	"github.com/suparena/propconfig/registry"
	"github.com/suparena/propconfig/value"
)

func newKeysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List every setting with its type and default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tDEFAULT")
			for _, k := range keys.All() {
				info, _ := keys.Metadata(k)
				fmt.Fprintf(tw, "%s\t%s\t%s\n", info.Name, info.Type(), displayValue(info.Default))
			}
			return tw.Flush()
		},
	}
}

func displayValue(v value.Value) string {
	if s, ok := v.(value.String); ok {
		return fmt.Sprintf("%q", string(s))
	}
	return value.Format(v)
}

func currentValue(a *app, k keys.Key) (value.Value, error) {
	var v value.Value
	err := a.cfg.View(func(r *registry.Registry) error {
		it, err := r.Item(k)
		if err != nil {
			return err
		}
		v = it.Value()
		return nil
	})
	return v, err
}

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show the description, type, default and current value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keys.Lookup(args[0])
			if err != nil {
				return err
			}
			info, _ := keys.Metadata(k)
			cur, err := currentValue(a, k)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n  %s\n\n", info.Name, info.Description)
			fmt.Fprintf(out, "  type:    %s\n", info.Type())
			fmt.Fprintf(out, "  default: %s\n", displayValue(info.Default))
			fmt.Fprintf(out, "  current: %s\n", displayValue(cur))
			return nil
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get NAME",
		Short: "Print the current value of a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keys.Lookup(args[0])
			if err != nil {
				return err
			}
			v, err := currentValue(a, k)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value.Format(v))
			return nil
		},
	}
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME VALUE",
		Short: "Change a setting and write the settings file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keys.Lookup(args[0])
			if err != nil {
				return err
			}
			tag, _ := keys.TypeOf(k)
			v, err := value.Parse(tag, args[1])
			if err != nil {
				return err
			}

			err = a.cfg.Update(func(r *registry.Registry) error {
				it, err := r.Item(k)
				if err != nil {
					return err
				}
				return it.Set(v)
			})
			if err != nil {
				return err
			}
			a.logger.Info().Str("key", args[0]).Str("value", value.Format(v)).Msg("setting changed")
			return a.saveSettings()
		},
	}
}

func newShowCmd(a *app) *cobra.Command {
	var (
		format string
		indent bool
	)
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []byte
			err := a.cfg.View(func(r *registry.Registry) error {
				var err error
				switch format {
				case "json":
					if indent {
						out, err = codec.EncodeIndent(r, "  ")
						return err
					}
					var text string
					text, err = codec.EncodeString(r)
					out = []byte(text + "\n")
				case "yaml", "yml":
					out, err = codec.EncodeYAML(r)
				default:
					err = fmt.Errorf("unknown format %q (want json or yaml)", format)
				}
				return err
			})
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&indent, "indent", false, "indent JSON output")
	return cmd
}

func newApplyCmd(a *app) *cobra.Command {
	var atomic bool
	cmd := &cobra.Command{
		Use:   "apply FILE",
		Short: "Apply the settings in a JSON or YAML document and write the settings file",
		Long: `Apply the members of a JSON or YAML document to the configuration.

Members are applied in order. Without --atomic, members before a failing member
stay applied. With --atomic, a failing document changes nothing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			decode := decoderFor(args[0], data)
			if atomic {
				err = a.cfg.Apply(decode)
			} else {
				err = a.cfg.Update(decode)
			}
			if err != nil {
				if !atomic {
					// Save what was applied before the failure.
					if serr := a.saveSettings(); serr != nil {
						a.logger.Error().Err(serr).Msg("failed to write settings file")
					}
				}
				return err
			}
			a.logger.Info().Str("file", args[0]).Bool("atomic", atomic).Msg("document applied")
			return a.saveSettings()
		},
	}
	cmd.Flags().BoolVar(&atomic, "atomic", false, "apply all members or none")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the settings document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := codec.SchemaJSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := propconfig.GetVersionInfo()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "propconfig version %s\n", info.Version)
			fmt.Fprintf(out, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(out, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(out, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}
