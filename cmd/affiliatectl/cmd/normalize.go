package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"instrumatch-affiliate/internal/normalize"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <url>",
		Short: "Dry-run the retailer rule table against one URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawURL := strings.TrimSpace(args[0])
			if rawURL == "" {
				return errUsage
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			n := normalize.New(normalize.DefaultRules(cfg.Thomann), logger)
			fmt.Fprintln(cmd.OutOrStdout(), n.Normalize(rawURL))
			return nil
		},
	}
}
