// 包 publish：把本次提取结果推送到可选的下游（Postgres、Redis）
package publish

import (
	"boundary-extract/internal/boundary"
	"boundary-extract/internal/logger"
	"context"
	"fmt"
	"time"
)

// 文档注释：发布端接口
// 背景：文件产物是主输出；发布端把同一结果同步给前端使用的数据库或缓存
// 约束：Publish 只读 Result，不得修改其中的集合与列表
type Publisher interface {
	Name() string
	Publish(ctx context.Context, res *boundary.Result) error
}

// PublishError：某个发布端失败，整次运行视为失败
type PublishError struct {
	Publisher string
	Err       error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish: %s: %v", e.Publisher, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }

// Manager：按注册顺序依次调用发布端
type Manager struct {
	ps []Publisher
}

func NewManager() *Manager { return &Manager{} }

func (m *Manager) Register(p Publisher) {
	m.ps = append(m.ps, p)
	logger.L().Info("publisher_registered", "name", p.Name())
}

func (m *Manager) Len() int { return len(m.ps) }

// PublishAll：顺序发布，遇到第一个错误即停止并返回 *PublishError
func (m *Manager) PublishAll(ctx context.Context, res *boundary.Result) error {
	for _, p := range m.ps {
		start := time.Now()
		if err := p.Publish(ctx, res); err != nil {
			logger.L().Error("publish_error", "name", p.Name(), "err", err)
			return &PublishError{Publisher: p.Name(), Err: err}
		}
		logger.L().Info("publish_ok", "name", p.Name(), "ms", time.Since(start).Milliseconds())
	}
	return nil
}
