package main

import (
	"context"
	"fmt"

	"github.com/suPer8Hu/gopherchat/internal/config"
	"github.com/suPer8Hu/gopherchat/internal/db"
	"github.com/suPer8Hu/gopherchat/internal/logging"
	"github.com/suPer8Hu/gopherchat/internal/session"
)

func storeRegistry(cfg config.Config) *session.Registry {
	reg := session.NewRegistry()

	gormOpener := func(driver string) session.Opener {
		return func(ctx context.Context) (session.Store, func() error, error) {
			gdb, err := db.Connect(driver, cfg.DBDSN)
			if err != nil {
				return nil, nil, fmt.Errorf("connect %s: %w", driver, err)
			}
			sqlDB, err := gdb.DB()
			if err != nil {
				return nil, nil, err
			}
			gs, err := session.NewGormStore(gdb)
			if err != nil {
				_ = sqlDB.Close()
				return nil, nil, err
			}
			return gs, sqlDB.Close, nil
		}
	}
	reg.Register(config.StoreSQLite, gormOpener(config.StoreSQLite))
	reg.Register(config.StoreMySQL, gormOpener(config.StoreMySQL))

	reg.Register(config.StoreRedis, func(ctx context.Context) (session.Store, func() error, error) {
		rs, err := session.NewRedisStore(session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, "gopherchat")
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	})

	reg.Register(config.StoreMemory, func(ctx context.Context) (session.Store, func() error, error) {
		return session.NewMemoryStore(), nil, nil
	})

	return reg
}

// openStore builds the configured token store, sealed when a secret is set.
func openStore(ctx context.Context, cfg config.Config) (session.Store, func() error, error) {
	store, closeFn, err := storeRegistry(cfg).Open(ctx, cfg.TokenStore)
	if err != nil {
		return nil, nil, err
	}

	if cfg.TokenSecret != "" {
		sealed, err := session.NewSealedStore(store, cfg.TokenSecret)
		if err != nil {
			_ = closeFn()
			return nil, nil, err
		}
		store = sealed
	}

	log := logging.Ctx(ctx)
	log.Debug().Str(logging.FieldStore, cfg.TokenStore).Bool("sealed", cfg.TokenSecret != "").Msg("token store ready")
	return store, closeFn, nil
}
