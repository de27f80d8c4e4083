package migrate

import (
	"boundary-extract/internal/logger"
	"context"
	"database/sql"
)

// Statements：发布端所需表结构
// 背景：前端从 _boundary_features 读取边界；_boundary_runs 记录每次刷新的摘要
// 约束：全部使用 IF NOT EXISTS，可重复执行
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS _boundary_features (
        position INT PRIMARY KEY,
        name TEXT NOT NULL,
        feature JSONB NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE TABLE IF NOT EXISTS _boundary_runs (
        id SERIAL PRIMARY KEY,
        target TEXT NOT NULL,
        total INT NOT NULL,
        kept INT NOT NULL,
        missing JSONB NOT NULL,
        names JSONB NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS idx_boundary_features_name ON _boundary_features(name)`,
	`CREATE INDEX IF NOT EXISTS idx_boundary_runs_created ON _boundary_runs(created_at DESC)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range Statements {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
