package main

import (
	"boundary-extract/internal/boundary"
	"boundary-extract/internal/config"
	"boundary-extract/internal/logger"
	"boundary-extract/internal/metrics"
	"boundary-extract/internal/migrate"
	"boundary-extract/internal/publish"
	"boundary-extract/internal/store"
	"boundary-extract/internal/utils"
	"context"
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// 文档注释：边界提取入口
// 背景：每次数据刷新手动运行一次；筛出与底特律接壤的市镇，并入温莎边界，写出边界集合与地名列表。
// 约束：任一步失败即以非零退出；产物原子替换；发布端与指标推送按环境变量可选启用。
func main() {
	_ = godotenv.Load(".env")
	l := logger.Setup()
	cfg, err := config.Load()
	if err != nil {
		l.Error("config_error", "err", err)
		os.Exit(1)
	}
	o := cfg.Boundary
	l.Debug("config_ok", "primary", o.PrimaryPath, "secondary", o.SecondaryPath, "allowlist", cfg.AllowListSource, "allowlist_len", o.AllowList.Len())

	run := metrics.NewRun()
	defer func() {
		if err := run.Push(cfg.MetricsPushgateway); err != nil {
			l.Warn("metrics_push_error", "err", err)
		}
	}()

	res, err := boundary.NewPipeline(o).Run()
	if err != nil {
		run.Fail(stageOf(err))
		logFailure(err)
		exit(run, cfg, 1)
	}
	run.Observe(res, time.Now())

	if err := publishResult(cfg, res); err != nil {
		run.Fail("publish")
		l.Error("publish_failed", "err", err)
		exit(run, cfg, 1)
	}
	l.Info("boundary_extract_done",
		"target", res.Summary.Target,
		"total", res.Summary.Total,
		"kept", res.Summary.Kept,
		"missing", len(res.Summary.Missing),
		"names", len(res.Names),
		"ms", res.Summary.Duration.Milliseconds(),
	)
}

// exit：os.Exit 不执行 defer，退出前先推送指标
func exit(run *metrics.Run, cfg *config.Config, code int) {
	if err := run.Push(cfg.MetricsPushgateway); err != nil {
		logger.L().Warn("metrics_push_error", "err", err)
	}
	os.Exit(code)
}

func stageOf(err error) string {
	var le *boundary.DataLoadError
	var nf *boundary.FeatureNotFoundError
	var we *boundary.WriteError
	switch {
	case errors.As(err, &le):
		return "load"
	case errors.As(err, &nf):
		return "extract"
	case errors.As(err, &we):
		return "write"
	case errors.Is(err, boundary.ErrAllowListCoverage):
		return "filter"
	}
	return "unknown"
}

func logFailure(err error) {
	l := logger.L()
	var le *boundary.DataLoadError
	var nf *boundary.FeatureNotFoundError
	var we *boundary.WriteError
	switch {
	case errors.As(err, &le):
		l.Error("boundary_load_error", "path", le.Path, "err", le.Err)
	case errors.As(err, &nf):
		l.Error("feature_not_found", "name", nf.Name, "key", nf.Key, "path", nf.Path)
	case errors.As(err, &we):
		l.Error("artifact_write_error", "path", we.Path, "err", we.Err)
	default:
		l.Error("boundary_extract_error", "err", err)
	}
}

func publishResult(cfg *config.Config, res *boundary.Result) error {
	m := publish.NewManager()
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if cfg.Publish.Postgres {
		db, err := utils.OpenPostgresFromEnv()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		if err := migrate.EnsureSchema(ctx, db); err != nil {
			return err
		}
		m.Register(publish.NewPostgresPublisher(store.AttachDB(db), cfg.Boundary.NameKey))
	}
	if cfg.Publish.Redis {
		rc := utils.OpenRedisFromEnv()
		defer rc.Close()
		if err := rc.Ping(ctx).Err(); err != nil {
			return err
		}
		m.Register(publish.NewRedisPublisher(rc, cfg.Publish.RedisKeyspace, time.Duration(cfg.Publish.RedisTTLSec)*time.Second))
	}
	if m.Len() == 0 {
		logger.L().Debug("publish_disabled")
		return nil
	}
	return m.PublishAll(ctx, res)
}
