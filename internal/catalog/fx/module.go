package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/catalog"
)

var Module = fx.Options(
	fx.Provide(catalog.NewStore),
)
