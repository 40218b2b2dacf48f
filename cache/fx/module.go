package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/cache"
)

var Module = fx.Options(
	fx.Provide(cache.NewRedis),
)
