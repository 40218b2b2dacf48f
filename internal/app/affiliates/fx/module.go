package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/app/affiliates"
	"instrumatch-affiliate/internal/router"
)

var Module = fx.Options(
	fx.Provide(
		router.AsRoute(affiliates.NewTopRedirectHandler),
		router.AsRoute(affiliates.NewStoreRedirectHandler),
		router.AsRoute(affiliates.NewResolveHandler),
	),
)
