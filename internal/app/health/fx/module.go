package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/app/health"
	"instrumatch-affiliate/internal/router"
)

var Module = fx.Options(
	fx.Provide(
		router.AsRoute(health.NewHandler),
	),
)
