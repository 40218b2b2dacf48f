package fx

import (
	"go.uber.org/fx"

	"instrumatch-affiliate/db"
)

var Module = fx.Options(
	fx.Provide(db.NewSQLXPostgresDB),
)
