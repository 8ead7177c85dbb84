// Package main provides the roster binary: the web front-end of the
// activity backend, an optional Discord bot, and terminal commands.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"activityroster/internal/domain/entities"
)

const (
	Version = "0.1.0"
	appName = "roster"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags override the environment for one invocation.
type globalFlags struct {
	logLevel string
	backend  string
	locale   string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Activity roster client",
		Long:          "Browse activities and manage sign-ups through the activity backend, in a browser, on Discord or from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&flags.backend, "backend", "", "Backend base URL; overrides BACKEND_URL")
	cmd.PersistentFlags().StringVar(&flags.locale, "locale", "", "Message locale; defaults to DEFAULT_LOCALE")

	cmd.AddCommand(
		serveCmd(&flags),
		listCmd(&flags),
		signupCmd(&flags),
		removeCmd(&flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)
	return cmd
}

func serveCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the web front-end and, when configured, the Discord bot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func listCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List activities and their participants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.presenter(cmd).List(cmd.Context())
		},
	}
}

func signupCmd(flags *globalFlags) *cobra.Command {
	var reg entities.Registration
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Sign a student up for an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.presenter(cmd).Signup(cmd.Context(), reg)
		},
	}
	cmd.Flags().StringVar(&reg.Activity, "activity", "", "Activity name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Student email")
	return cmd
}

func removeCmd(flags *globalFlags) *cobra.Command {
	var (
		reg entities.Registration
		yes bool
	)
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Unregister a student from an activity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			return a.presenter(cmd).Remove(cmd.Context(), reg, yes)
		},
	}
	cmd.Flags().StringVar(&reg.Activity, "activity", "", "Activity name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Student email")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	_ = cmd.MarkFlagRequired("activity")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

