package db

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"instrumatch-affiliate/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func NewSQLXPostgresDB(lc fx.Lifecycle, cfg *config.Config, log *zap.SugaredLogger) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.DB.Host) == "" || strings.TrimSpace(cfg.DB.Name) == "" {
		log.Infow("postgres disabled (missing DB_HOST/DB_NAME)")
		return nil, nil
	}

	db, err := sqlx.Open("pgx", postgresDSN(cfg))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				_ = db.Close()
				return fmt.Errorf("postgres ping failed: %w", err)
			}
			log.Infow("postgres connected", "host", cfg.DB.Host, "db", cfg.DB.Name)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				log.Warnw("postgres close failed", "err", err)
			}
			return nil
		},
	})

	return db, nil
}

func postgresDSN(cfg *config.Config) string {
	u := &url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.DB.Host, cfg.DB.Port),
		Path:   cfg.DB.Name,
	}
	if strings.TrimSpace(cfg.DB.User) != "" {
		if cfg.DB.Password == "" {
			u.User = url.User(cfg.DB.User)
		} else {
			u.User = url.UserPassword(cfg.DB.User, cfg.DB.Password)
		}
	}
	return u.String()
}
