/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/suparena/propconfig/datastore/ddb"
	"github.com/suparena/propconfig/errors"
	"github.com/suparena/propconfig/storagemodels"
	"github.com/suparena/propconfig/store"
)

// dynamoStore opens the snapshot store on the table named by aws.table.
func (a *app) dynamoStore(ctx context.Context) (*store.Store, error) {
	table := a.v.GetString("aws.table")
	if table == "" {
		return nil, errors.NewValidationError("aws.table", "set aws.table, PROPCONFIG_AWS_TABLE or AWS_DDB_TABLE")
	}
	ds, err := ddb.NewDynamodbDataStore[storagemodels.Snapshot](ctx,
		a.v.GetString("aws.access_key"),
		a.v.GetString("aws.secret_key"),
		a.v.GetString("aws.region"),
		table)
	if err != nil {
		return nil, err
	}
	return store.New(ds), nil
}

func profileArg(args []string) string {
	if len(args) == 0 {
		return store.DefaultProfile
	}
	return args[0]
}

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [PROFILE]",
		Short: "Save the configuration as a named profile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.Save(cmd.Context(), profileArg(args), a.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved profile %s version %d (revision %s)\n", snap.Profile, snap.Version, snap.Revision)
			return nil
		},
	}
}

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load [PROFILE]",
		Short: "Load a named profile and write the settings file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := s.Load(cmd.Context(), profileArg(args), a.cfg)
			if err != nil {
				return err
			}
			if err := a.saveSettings(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "loaded profile %s version %d (revision %s)\n", snap.Profile, snap.Version, snap.Revision)
			return nil
		},
	}
}

func newProfilesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List saved profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			snaps, err := s.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PROFILE\tVERSION\tUPDATED\tLIBRARY\tREVISION")
			for _, snap := range snaps {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", snap.Profile, snap.Version, snap.UpdatedAt, snap.LibraryVersion, snap.Revision)
			}
			return tw.Flush()
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete PROFILE",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted profile %s\n", args[0])
			return nil
		},
	}
}
