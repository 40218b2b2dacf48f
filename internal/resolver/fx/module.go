package fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"
	"instrumatch-affiliate/internal/normalize"
	"instrumatch-affiliate/internal/resolver"
)

var Module = fx.Options(
	fx.Provide(NewResolver),
)

type resolverParams struct {
	fx.In

	Cfg    *config.Config
	Stores resolver.StoresClient
	Norm   *normalize.Normalizer
	Cache  *redis.Client `optional:"true"`
	Logger *zap.SugaredLogger
}

func NewResolver(p resolverParams) *resolver.Resolver {
	return resolver.New(p.Stores, p.Norm, p.Cache, p.Cfg.Redis.TopURLTTL, p.Logger)
}
