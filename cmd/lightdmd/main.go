// Copyright © 2025 lightdm-go contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/lightdmd/main.go
// Summary: Display-manager daemon entry point.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lightdm/internal/xversion"
)

// Version of the daemon itself, stamped by the build.
var Version = "dev"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "lightdmd",
		Short:         "Display manager daemon supervising local X servers",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(configPath)
		},
	}

	cmd.PersistentFlags().StringVar(&configPath, "config",
		"/etc/lightdm/lightdm.conf", "keyfile configuration path")

	cmd.AddCommand(newVersionCommand())
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print daemon and detected X server versions",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lightdmd %s\n", Version)
			major, minor := xversion.NewProbe("X").Version()
			if major == 0 && minor == 0 {
				fmt.Println("X server: not detected")
				return
			}
			fmt.Printf("X server: %d.%d\n", major, minor)
		},
	}
}
