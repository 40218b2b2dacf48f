package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"instrumatch-affiliate/internal/catalog"
	"instrumatch-affiliate/internal/normalize"
	"instrumatch-affiliate/internal/pricing"
	"instrumatch-affiliate/internal/resolver"
)

func newResolveCmd() *cobra.Command {
	var (
		store      string
		urlFlag    string
		thomannURL string
		links      []string
	)

	resolveCmd := &cobra.Command{
		Use:   "resolve <product-id>",
		Short: "Resolve one product against the configured pricing service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			contentLinks := make(map[string]string, len(links))
			for _, l := range links {
				name, rawURL, ok := strings.Cut(l, "=")
				if !ok {
					return fmt.Errorf("invalid --link %q (want name=url)", l)
				}
				contentLinks[name] = rawURL
			}

			product := catalog.Product{
				ID:                productID,
				ContentStoreLinks: contentLinks,
				ThomannURL:        thomannURL,
			}

			norm := normalize.New(normalize.DefaultRules(cfg.Thomann), logger)
			res := resolver.New(pricing.NewClient(cfg), norm, nil, 0, logger)

			var resolved string
			if strings.TrimSpace(store) != "" {
				resolved = res.ResolveForStore(cmd.Context(), product, store, urlFlag)
			} else {
				resolved = res.ResolveTopURL(cmd.Context(), product)
			}

			if resolved == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "(no URL resolvable)")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), resolved)
			return nil
		},
	}

	resolveCmd.Flags().StringVar(&store, "store", "", "resolve for one named store instead of the top store")
	resolveCmd.Flags().StringVar(&urlFlag, "url", "", "caller-supplied raw URL for the named store")
	resolveCmd.Flags().StringVar(&thomannURL, "thomann-url", "", "dedicated Thomann product URL")
	resolveCmd.Flags().StringArrayVar(&links, "link", nil, "content store link as name=url (repeatable)")

	return resolveCmd
}
