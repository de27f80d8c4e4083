// 包 store：边界发布到 PostgreSQL 的数据访问层
package store

import (
	"boundary-extract/internal/boundary"
	"boundary-extract/internal/logger"
	"context"
	"database/sql"
	"encoding/json"
)

// Store：持有连接池，提供要素替换与运行记录
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

// ReplaceFeatures：在一个事务内整表替换边界要素
// 背景：与文件产物一致，每次刷新完全覆盖，不保留上一轮残留
// 约束：position 为要素在合并集合中的下标，读取时按其排序即可还原顺序
func (s *Store) ReplaceFeatures(ctx context.Context, fc *boundary.FeatureCollection, nameKey string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM _boundary_features`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO _boundary_features(position, name, feature) VALUES($1,$2,$3)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, f := range fc.Features {
		b, err := f.MarshalJSON()
		if err != nil {
			return err
		}
		name, _ := boundary.PlaceName(f, nameKey)
		if _, err := stmt.ExecContext(ctx, i, name, string(b)); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	logger.L().Debug("store_features_replaced", "count", len(fc.Features))
	return nil
}

// RecordRun：追加一条运行摘要，返回自增 id
func (s *Store) RecordRun(ctx context.Context, sum boundary.Summary, names []string) (int64, error) {
	missing := sum.Missing
	if missing == nil {
		missing = []string{}
	}
	mb, err := json.Marshal(missing)
	if err != nil {
		return 0, err
	}
	nb, err := json.Marshal(names)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO _boundary_runs(target, total, kept, missing, names) VALUES($1,$2,$3,$4,$5) RETURNING id`,
		sum.Target, sum.Total, sum.Kept, string(mb), string(nb),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	logger.L().Debug("store_run_recorded", "id", id)
	return id, nil
}
