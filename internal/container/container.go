package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/fiqriashiddiqi/user-registry/config"
	"github.com/fiqriashiddiqi/user-registry/internal/infrastructure/postgres"
)

// app-level container to share constructed components across packages.
// Everything here is constructed once in main and injected; no package builds
// its own pool or logger.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *postgres.DB
	redisClient *redis.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetDB(d *postgres.DB)       { db = d }
func GetDB() *postgres.DB        { return db }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
