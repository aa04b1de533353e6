package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ecoacustica/internal/api"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Start a session with a registered account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(password) == "" {
				return errors.New("a password is required (use --password)")
			}

			result, err := api.Login(cmd.Context(), api.LoginRequest{
				Config:     cfg,
				Logger:     ctx.logger(),
				Email:      args[0],
				Credential: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", result.User.Name, result.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			result, err := api.Logout(cmd.Context(), api.LogoutRequest{Config: cfg, Logger: ctx.logger()})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if result.WasActive {
				fmt.Fprintf(out, "Logged out %s\n", result.User.Email)
			} else {
				fmt.Fprintln(out, "No active session")
			}
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			status, err := api.DescribeSession(cmd.Context(), api.SessionStatusRequest{Config: cfg, Logger: ctx.logger()})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, status)
			}
			out := cmd.OutOrStdout()
			if !status.Active {
				fmt.Fprintln(out, "No active session")
				return nil
			}
			fmt.Fprintf(out, "%s <%s>\n", status.User.Name, status.User.Email)
			fmt.Fprintf(out, "Role: %s\n", status.User.Role)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
