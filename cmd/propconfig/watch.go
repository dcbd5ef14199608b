/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/suparena/propconfig/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-apply the settings file whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isYAML(a.settingsPath()) {
				return fmt.Errorf("watch needs a JSON settings file, got %s", a.settingsPath())
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			return watcher.Watch(ctx, a.cfg, a.settingsPath(),
				watcher.WithDebounce(debounce),
				watcher.WithCallback(func(ev watcher.Event) {
					if ev.Err != nil {
						fmt.Fprintf(out, "%s rejected: %v\n", ev.At.Format(time.TimeOnly), ev.Err)
						return
					}
					text, err := a.cfg.GetJSONString()
					if err != nil {
						fmt.Fprintf(out, "%s applied, encode failed: %v\n", ev.At.Format(time.TimeOnly), err)
						return
					}
					fmt.Fprintf(out, "%s applied %s\n", ev.At.Format(time.TimeOnly), text)
				}))
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "wait for changes to settle before applying")
	return cmd
}
