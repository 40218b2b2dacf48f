package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/server"
)

var ServerOptions = fx.Options(
	fx.Provide(server.NewHTTPServer),
	fx.Invoke(RegisterHTTPServerLifecycle),
)
