package fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
	"instrumatch-affiliate/internal/normalize"
)

var Module = fx.Options(
	fx.Provide(NewNormalizer),
)

func NewNormalizer(cfg *config.Config, logger *zap.SugaredLogger) *normalize.Normalizer {
	return normalize.New(normalize.DefaultRules(cfg.Thomann), logger)
}
