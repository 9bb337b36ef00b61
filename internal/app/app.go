package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/grocery-stock/internal/adapter/storage"
	"github.com/rl1809/grocery-stock/internal/config"
	"github.com/rl1809/grocery-stock/internal/core/normalize"
	"github.com/rl1809/grocery-stock/internal/core/service"
	"github.com/rl1809/grocery-stock/internal/port"
)

// App holds the wired service and the connections it owns.
type App struct {
	Store   *storage.ExcelStore
	Service *service.InventoryService

	db  *sql.DB
	rdb *redis.Client
}

// New connects the optional backends and builds the inventory service.
// Without REDIS_ADDR the cycle guard is process-local; without MYSQL_DSN
// movement history is disabled.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	var ledger port.MovementLedger
	if cfg.MySQL.DSN != "" {
		db, err := sql.Open("mysql", cfg.MySQL.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to connect mysql: %w", err)
		}
		db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to ping mysql: %w", err)
		}
		log.Println("connected to mysql")

		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to prepare movement table: %w", err)
		}
		a.db = db
		ledger = mysqlAdapter
	} else {
		log.Println("MYSQL_DSN not set, movement history disabled")
	}

	var guard port.CycleGuard
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			a.Close()
			rdb.Close()
			return nil, fmt.Errorf("failed to connect redis: %w", err)
		}
		log.Println("connected to redis")
		a.rdb = rdb
		guard = storage.NewRedisAdapter(rdb)
	} else {
		guard = storage.NewMemoryGuard()
	}

	normalizer := normalize.New()
	normalizer.MinMatches = cfg.Sheet.MinMatches
	normalizer.Legacy = cfg.Sheet.LegacyHeaders

	a.Store = storage.NewExcelStore(cfg.Sheet.Path, cfg.Sheet.SheetName, normalizer)
	a.Service = service.NewInventoryService(a.Store, guard, ledger, cfg.Redis.LockTTL)
	return a, nil
}

func (a *App) Close() {
	if a.rdb != nil {
		a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
