package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/pricing"
	"instrumatch-affiliate/internal/resolver"
)

var Module = fx.Options(
	fx.Provide(
		fx.Annotate(
			pricing.NewClient,
			fx.As(new(resolver.StoresClient)),
		),
	),
)
