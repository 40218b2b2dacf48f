package main

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	cachefx "instrumatch-affiliate/cache/fx"
	dbfx "instrumatch-affiliate/db/fx"
	affiliatesfx "instrumatch-affiliate/internal/app/affiliates/fx"
	appfx "instrumatch-affiliate/internal/app/fx"
	healthfx "instrumatch-affiliate/internal/app/health/fx"
	catalogfx "instrumatch-affiliate/internal/catalog/fx"
	clicksfx "instrumatch-affiliate/internal/clicks/fx"
	normalizefx "instrumatch-affiliate/internal/normalize/fx"
	pricingfx "instrumatch-affiliate/internal/pricing/fx"
	resolverfx "instrumatch-affiliate/internal/resolver/fx"
	routerfx "instrumatch-affiliate/internal/router/fx"
	serverfx "instrumatch-affiliate/internal/server/fx"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		appfx.CoreAppOptions,
		dbfx.Module,
		cachefx.Module,
		catalogfx.Module,
		normalizefx.Module,
		pricingfx.Module,
		resolverfx.Module,
		clicksfx.Module,
		routerfx.CoreRouterOptions,
		serverfx.ServerOptions,
		healthfx.Module,
		affiliatesfx.Module,
	)

	app.Run()
}
