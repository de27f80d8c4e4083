package utils

import (
	"boundary-extract/internal/logger"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// BuildRedisOptions：由 REDIS_* 变量构造连接参数
// 约束：REDIS_DB 解析失败或为负数时回退到 0
func BuildRedisOptions(getenv func(string) string) *redis.Options {
	addr := envOr(getenv, "REDIS_HOST", "127.0.0.1") + ":" + envOr(getenv, "REDIS_PORT", "6379")
	db := 0
	if v := getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			db = n
		}
	}
	return &redis.Options{Addr: addr, Password: getenv("REDIS_PASS"), DB: db}
}

func OpenRedisFromEnv() *redis.Client {
	opts := BuildRedisOptions(os.Getenv)
	logger.L().Debug("redis_env", "addr", opts.Addr, "db", opts.DB)
	return redis.NewClient(opts)
}
