package container

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/multitenant-notes/config"
	"github.com/oksasatya/multitenant-notes/internal/infrastructure/memory"
	"github.com/oksasatya/multitenant-notes/internal/metrics"
	"github.com/oksasatya/multitenant-notes/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	store       *memory.Store
	redisClient *redis.Client
	prom        *metrics.Metrics

	jwtManager *helpers.JWTManager

	rabbitPub *helpers.RabbitPublisher
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return logrus.StandardLogger()
	}
	return logger
}
func SetStore(s *memory.Store)      { store = s }
func GetStore() *memory.Store       { return store }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetMetrics(m *metrics.Metrics) { prom = m }
func GetMetrics() *metrics.Metrics  { return prom }
func SetJWT(m *helpers.JWTManager)  { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager != nil {
		return jwtManager
	}
	return helpers.DefaultJWT()
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }

// Reset clears every singleton. Tests call it between servers.
func Reset() {
	cfg, logger, store, redisClient, prom, jwtManager, rabbitPub = nil, nil, nil, nil, nil, nil, nil
}
