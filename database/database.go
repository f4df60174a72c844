// Package database opens the backing store shared by the auth and task modules.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Parasuram76/Task-Management-System/domain/admin"
	"github.com/Parasuram76/Task-Management-System/domain/task"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Mongo collection names.
const (
	AdminsCollection = "admins"
	TasksCollection  = "tasks"
)

const connectTimeout = 10 * time.Second

// Config selects and configures the backing store.
type Config struct {
	Driver        string
	SQLitePath    string
	MongoURI      string
	MongoDatabase string
	Debug         bool
}

// DB is an open handle to exactly one of the supported stores.
type DB struct {
	driver string
	target string

	Gorm  *gorm.DB
	Mongo *mongo.Database
}

// Open connects to the configured store. The caller owns the handle and must
// Close it.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		return openSQLite(cfg)
	case DriverMongo:
		return openMongo(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSQLite(cfg Config) (*DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{driver: DriverSQLite, target: cfg.SQLitePath, Gorm: db}, nil
}

func openMongo(ctx context.Context, cfg Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	return &DB{
		driver: DriverMongo,
		target: cfg.MongoDatabase,
		Mongo:  client.Database(cfg.MongoDatabase),
	}, nil
}

// Driver returns the name of the open driver.
func (d *DB) Driver() string {
	return d.driver
}

// Target describes where the data lives (file path or database name).
func (d *DB) Target() string {
	return d.target
}

// Migrate creates the schema. For SQLite this runs GORM auto-migration; for
// Mongo it creates the unique email index and the owner listing index.
func (d *DB) Migrate(ctx context.Context) error {
	switch {
	case d.Gorm != nil:
		if err := d.Gorm.WithContext(ctx).AutoMigrate(&admin.Admin{}, &task.Task{}); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	case d.Mongo != nil:
		_, err := d.Mongo.Collection(AdminsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create admin email index: %w", err)
		}
		_, err = d.Mongo.Collection(TasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
		})
		if err != nil {
			return fmt.Errorf("failed to create task owner index: %w", err)
		}
		return nil
	default:
		return errors.New("database not initialized")
	}
}

// Ping checks that the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	switch {
	case d.Gorm != nil:
		sqlDB, err := d.Gorm.DB()
		if err != nil {
			return fmt.Errorf("failed to get database connection: %w", err)
		}
		return sqlDB.PingContext(ctx)
	case d.Mongo != nil:
		return d.Mongo.Client().Ping(ctx, nil)
	default:
		return errors.New("database not initialized")
	}
}

// Close releases the underlying connections.
func (d *DB) Close(ctx context.Context) error {
	switch {
	case d.Gorm != nil:
		sqlDB, err := d.Gorm.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	case d.Mongo != nil:
		return d.Mongo.Client().Disconnect(ctx)
	}
	return nil
}
