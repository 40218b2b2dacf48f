package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/internal/clicks"
	"instrumatch-affiliate/internal/pkg/amqpclient"
)

var Module = fx.Options(
	fx.Provide(
		amqpclient.NewAMQP,
		clicks.NewPublisher,
	),
)
