package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/PrivatePlace/PP-Backend/internal/ads"
	"github.com/PrivatePlace/PP-Backend/internal/auth"
	"github.com/PrivatePlace/PP-Backend/internal/config"
	"github.com/PrivatePlace/PP-Backend/internal/db"
	"github.com/PrivatePlace/PP-Backend/internal/filestore"
	"github.com/PrivatePlace/PP-Backend/internal/media"
	"github.com/PrivatePlace/PP-Backend/internal/sessions"
	"gorm.io/gorm"
)

// OpenBackends connects whatever cfg selects. The returned closer releases
// connections opened along the way.
func OpenBackends(ctx context.Context, cfg config.Config) (Backends, func(), error) {
	var (
		b       Backends
		gdb     *gorm.DB
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (Backends, func(), error) {
		closeAll()
		return Backends{}, nil, err
	}

	if cfg.StoreBackend == config.StorePostgres || cfg.Session.Backend == config.SessionPostgres {
		conn, err := db.Connect(cfg.DatabaseURL)
		if err != nil {
			return fail(err)
		}
		gdb = conn
		closers = append(closers, func() {
			if sqlDB, err := conn.DB(); err == nil {
				sqlDB.Close()
			}
		})
	}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		if err := auth.Init(gdb); err != nil {
			return fail(fmt.Errorf("migrate users: %w", err))
		}
		if err := ads.Init(gdb); err != nil {
			return fail(fmt.Errorf("migrate ads: %w", err))
		}
		b.Users = auth.NewGormUserStore(gdb)
		b.Ads = ads.NewGormStore(gdb)
	case config.StoreFile:
		fs, err := filestore.Open(cfg.DataDir)
		if err != nil {
			return fail(err)
		}
		b.Users = fs
		b.Ads = fs
		log.Printf("[server] using flat-file store in %s", cfg.DataDir)
	default:
		return fail(fmt.Errorf("unknown store backend %q", cfg.StoreBackend))
	}

	switch cfg.Session.Backend {
	case config.SessionMemory:
		b.Sessions = sessions.NewMemoryStore()
	case config.SessionPostgres:
		store := sessions.NewGormStore(gdb)
		if err := store.Migrate(); err != nil {
			return fail(fmt.Errorf("migrate sessions: %w", err))
		}
		if n, err := store.PurgeExpired(ctx, time.Now()); err != nil {
			log.Printf("[server] purge expired sessions: %v", err)
		} else if n > 0 {
			log.Printf("[server] purged %d expired sessions", n)
		}
		b.Sessions = store
	case config.SessionRedis:
		rdb, err := sessions.ConnectRedis(ctx, cfg.Session.RedisAddr, cfg.Session.RedisPassword, cfg.Session.RedisDB)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { rdb.Close() })
		b.Sessions = sessions.NewRedisStore(rdb)
	default:
		return fail(fmt.Errorf("unknown session backend %q", cfg.Session.Backend))
	}

	switch cfg.Media.Backend {
	case config.MediaNone:
	case config.MediaLocal:
		local, err := media.NewLocalStore(cfg.Media.Dir, cfg.Media.PublicBaseURL)
		if err != nil {
			return fail(err)
		}
		b.Blobs = local
		b.MediaDir = local.Dir()
	case config.MediaS3:
		s3Store, err := media.NewS3Store(ctx, media.S3Options{
			Region:        cfg.Media.S3Region,
			Bucket:        cfg.Media.S3Bucket,
			Endpoint:      cfg.Media.S3Endpoint,
			AccessKey:     cfg.Media.S3AccessKey,
			SecretKey:     cfg.Media.S3SecretKey,
			PathStyle:     cfg.Media.S3PathStyle,
			PublicBaseURL: cfg.Media.PublicBaseURL,
		})
		if err != nil {
			return fail(err)
		}
		b.Blobs = s3Store
	default:
		return fail(fmt.Errorf("unknown media backend %q", cfg.Media.Backend))
	}

	return b, closeAll, nil
}
