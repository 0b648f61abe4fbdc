package database

import (
	"context"
	"fmt"
	"log"

	"creatorhub/config"
	"creatorhub/internal/domain/posts"
	"creatorhub/internal/domain/subscriptions"
	"creatorhub/internal/domain/tiers"
	"creatorhub/internal/domain/users"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	DB          *gorm.DB
	RedisClient *redis.Client
)

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ REQUIRED for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	// ✅ Auto-migrate all domain models
	if err := DB.AutoMigrate(
		// identity
		&users.User{},

		// catalog
		&tiers.Tier{},
		&posts.Post{},
		&posts.FileAsset{},

		// ledger + audit
		&subscriptions.Subscription{},
		&posts.FileAccessLog{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// InitRedis connects the optional tier cache. Skipped when REDIS_URL is
// unset; the app runs fine without it.
func InitRedis() {
	if config.REDIS_URL == "" {
		log.Println("REDIS_URL not set, tier cache disabled")
		return
	}

	opt, err := redis.ParseURL(config.REDIS_URL)
	if err != nil {
		log.Fatal("❌ Invalid REDIS_URL:", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("❌ Failed to connect to Redis:", err)
	}

	RedisClient = client
	fmt.Println("✅ Redis connected")
}
