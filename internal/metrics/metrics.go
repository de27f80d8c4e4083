package metrics

import (
	"boundary-extract/internal/boundary"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const job = "boundary_extract"

// 文档注释：单次运行的指标集合
// 背景：批处理进程运行结束即退出，无法被 Prometheus 抓取；结果通过 Pushgateway 推送
// 约束：使用独立 Registry，不注册 Go 运行时指标；同一进程可创建多份互不干扰
type Run struct {
	reg         *prometheus.Registry
	total       prometheus.Gauge
	kept        prometheus.Gauge
	missing     prometheus.Gauge
	names       prometheus.Gauge
	duration    prometheus.Gauge
	lastSuccess prometheus.Gauge
	failures    *prometheus.CounterVec
}

func NewRun() *Run {
	r := &Run{
		reg: prometheus.NewRegistry(),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_primary_features",
			Help: "Features loaded from the primary source",
		}),
		kept: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_kept_features",
			Help: "Features kept by the allow-list filter",
		}),
		missing: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_allowlist_missing",
			Help: "Allow-list names with no primary feature",
		}),
		names: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_names_written",
			Help: "Entries written to the name list",
		}),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_run_duration_seconds",
			Help: "Wall time of the last run",
		}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "boundary_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "boundary_run_failures_total",
			Help: "Failed runs by stage",
		}, []string{"stage"}),
	}
	r.reg.MustRegister(r.total, r.kept, r.missing, r.names, r.duration, r.lastSuccess, r.failures)
	return r
}

// Observe：记录成功运行的摘要
func (r *Run) Observe(res *boundary.Result, now time.Time) {
	r.total.Set(float64(res.Summary.Total))
	r.kept.Set(float64(res.Summary.Kept))
	r.missing.Set(float64(len(res.Summary.Missing)))
	r.names.Set(float64(len(res.Names)))
	r.duration.Set(res.Summary.Duration.Seconds())
	r.lastSuccess.Set(float64(now.Unix()))
}

// Fail：stage 取 extract、publish 等
func (r *Run) Fail(stage string) {
	r.failures.WithLabelValues(stage).Inc()
}

// Push：推送到 Pushgateway；url 为空时不做任何事
func (r *Run) Push(url string) error {
	if url == "" {
		return nil
	}
	return push.New(url, job).Gatherer(r.reg).Push()
}
