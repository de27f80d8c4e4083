// 包 utils：发布端使用的 Postgres / Redis 连接工具，统一环境变量读取
package utils

import (
	"database/sql"
	"net/url"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

func envOr(getenv func(string) string, k, def string) string {
	if v := getenv(k); v != "" {
		return v
	}
	return def
}

// BuildPostgresDSN：由 PG_* 变量拼出 lib/pq 可用的 URL 形式 DSN
// 约束：用户名与密码做 URL 转义；未设置 PG_SSLMODE 时为 disable
func BuildPostgresDSN(getenv func(string) string) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   envOr(getenv, "PG_HOST", "localhost") + ":" + envOr(getenv, "PG_PORT", "5432"),
		Path:   "/" + envOr(getenv, "PG_DB", "boundaries"),
	}
	user := envOr(getenv, "PG_USER", "postgres")
	if pass := getenv("PG_PASSWORD"); pass != "" {
		u.User = url.UserPassword(user, pass)
	} else {
		u.User = url.User(user)
	}
	q := url.Values{}
	q.Set("sslmode", envOr(getenv, "PG_SSLMODE", "disable"))
	u.RawQuery = q.Encode()
	return u.String()
}

// OpenPostgresFromEnv：打开连接池；批处理只需少量连接
func OpenPostgresFromEnv() (*sql.DB, error) {
	db, err := sql.Open("postgres", BuildPostgresDSN(os.Getenv))
	if err != nil {
		return nil, err
	}
	maxOpen := 4
	if v := os.Getenv("PG_MAX_OPEN_CONNS"); v != "" {
		if n, e := strconv.Atoi(v); e == nil && n > 0 {
			maxOpen = n
		}
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	return db, nil
}
