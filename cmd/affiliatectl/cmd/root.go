package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "affiliatectl",
		Short:         "Operator tool for the affiliate resolution service",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}

	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newResolveCmd())

	return rootCmd
}

func loadConfig() (*config.Config, *zap.SugaredLogger, error) {
	cfg, err := config.NewConfig(config.NewViper())
	if err != nil {
		return nil, nil, err
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger.Sugar(), nil
}
