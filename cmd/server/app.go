package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/wems/internal/config"
	"github.com/wems/internal/db"
	"github.com/wems/internal/localdb"
	"github.com/wems/internal/notify"
	"github.com/wems/internal/storage"
	"github.com/wems/internal/storage/indexed"
	"github.com/wems/internal/storage/jsonfile"
	"github.com/wems/internal/storage/kvstore"
	"github.com/wems/internal/storage/remote"
)

// app 持有进程内共享的所有存储组件
type app struct {
	gdb      *gorm.DB
	bus      *notify.Bus
	kv       *kvstore.Store
	local    *indexed.Store
	remote   *remote.Client
	jsonFile *jsonfile.Client
}

func openApp(ctx context.Context, cfg config.AppConfig) (*app, error) {
	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	bus := notify.NewBus()
	kv := kvstore.New(db.DB, kvstore.WithNotifier(bus))
	local := indexed.New(db.DB, kv, indexed.WithNotifier(bus))

	report, err := local.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize local database: %w", err)
	}
	if report != nil {
		log.Printf("[migrate] migrated=%v empty=%d failed=%d", report.Migrated, len(report.Empty), len(report.Failed))
	}

	remoteClient, err := remote.New(ctx, cfg.RemoteURL)
	if err != nil {
		log.Printf("[remote] %v, remote backend disabled", err)
		remoteClient, _ = remote.New(ctx, "")
	}

	return &app{
		gdb:      db.DB,
		bus:      bus,
		kv:       kv,
		local:    local,
		remote:   remoteClient,
		jsonFile: jsonfile.New(cfg.JSONServerURL),
	}, nil
}

func (a *app) close() {
	a.remote.Close()
	if sqlDB, err := a.gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// resolveKind 环境变量 STORAGE_TYPE 优先，否则读取保存的偏好
func (a *app) resolveKind(ctx context.Context, override string) storage.Kind {
	if override != "" {
		kind, err := storage.ParseKind(override)
		if err == nil {
			return kind
		}
		log.Printf("[storage] ignoring STORAGE_TYPE: %v", err)
	}
	return storage.ResolveKind(ctx, a.kv)
}

func (a *app) backend(kind storage.Kind) storage.Backend {
	switch kind {
	case storage.KindServer:
		return a.remote
	case storage.KindJSONFile:
		return a.jsonFile
	case storage.KindKeyValue:
		return a.kv
	default:
		return a.local
	}
}

func (a *app) facade(ctx context.Context, override string) *localdb.Store {
	kind := a.resolveKind(ctx, override)
	log.Printf("[localdb] using %s storage", kind)
	return localdb.New(a.backend(kind), a.bus)
}
