package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"instrumatch-affiliate/config"
	"instrumatch-affiliate/db/migrations"
	appfx "instrumatch-affiliate/internal/app/fx"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type MigrateCmd string

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		appfx.CoreAppOptions,
		fx.Supply(MigrateCmd(cmd)),
		fx.Invoke(registerMigrateHook),
	)

	startCtx, startCancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer startCancel()
	if err := app.Start(startCtx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

type migrateHookParams struct {
	fx.In

	Lc     fx.Lifecycle
	Cfg    *config.Config
	Logger *zap.SugaredLogger

	Cmd MigrateCmd
}

func registerMigrateHook(p migrateHookParams) {
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if strings.TrimSpace(p.Cfg.DB.Host) == "" || strings.TrimSpace(p.Cfg.DB.Name) == "" {
				return errors.New("postgres disabled: set DB_HOST and DB_NAME")
			}

			if err := goose.SetDialect("postgres"); err != nil {
				return fmt.Errorf("set goose dialect: %w", err)
			}
			goose.SetBaseFS(migrations.FS)

			db, err := sqlx.Open("pgx", postgresDSN(p.Cfg))
			if err != nil {
				return fmt.Errorf("open postgres: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
			defer pingCancel()
			if err := db.PingContext(pingCtx); err != nil {
				return fmt.Errorf("ping postgres: %w", err)
			}

			p.Logger.Infow("goose_run_start", "cmd", string(p.Cmd))
			if err := goose.RunContext(ctx, string(p.Cmd), db.DB, "."); err != nil {
				return fmt.Errorf("goose run %q: %w", p.Cmd, err)
			}
			p.Logger.Infow("goose_run_done", "cmd", string(p.Cmd))
			return nil
		},
	})
}

func postgresDSN(cfg *config.Config) string {
	dsn := fmt.Sprintf("postgres://%s:%d/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
	if strings.TrimSpace(cfg.DB.User) != "" {
		if cfg.DB.Password == "" {
			dsn = fmt.Sprintf("postgres://%s@%s:%d/%s", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		} else {
			dsn = fmt.Sprintf("postgres://%s:%s@%s:%d/%s", cfg.DB.User, cfg.DB.Password, cfg.DB.Host, cfg.DB.Port, cfg.DB.Name)
		}
	}
	return dsn
}
