// SPDX-License-Identifier: MIT

// Package cmd implements the patterns command line interface.
package cmd

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gitlab.com/fisherprime/patterns/internal/config"
)

// app holds the state shared by the commands.
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCommand instantiates the patterns command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "patterns",
		Short: "Composite hierarchies & criteria filters",
		Long: `patterns demonstrates a composite organisation chart of employees and
composable criteria filtering a set of people.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
			if a.cfg, err = config.Load(a.v); err != nil {
				return
			}

			if a.logger, err = a.cfg.Logger(cmd.ErrOrStderr()); err != nil {
				return
			}
			a.logger.WithField("config", a.cfg).Debug("configuration loaded")

			return
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "enable debug messages")
	flags.String("style", config.StyleTree, "output style (tree|plain)")
	flags.String("log-level", logrus.InfoLevel.String(), "log level")
	flags.String("log-format", config.FormatText, "log format (text|json)")

	_ = a.v.BindPFlag(config.KeyDebug, flags.Lookup("debug"))
	_ = a.v.BindPFlag(config.KeyStyle, flags.Lookup("style"))
	_ = a.v.BindPFlag(config.KeyLogLevel, flags.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, flags.Lookup("log-format"))

	rootCmd.AddCommand(newOrgChartCommand(a), newFilterCommand(a))

	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error { return NewRootCommand().ExecuteContext(ctx) }
