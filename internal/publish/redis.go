package publish

import (
	"boundary-extract/internal/boundary"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Setter：*redis.Client 满足此接口
type Setter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// 文档注释：Redis 发布端
// 背景：前端直接从缓存读取边界与地名列表，避免每次请求读盘
// 约束：键为 <keyspace>:features、<keyspace>:names、<keyspace>:updated_at；ttl 为 0 表示不过期
type RedisPublisher struct {
	rc       Setter
	keyspace string
	ttl      time.Duration
	now      func() time.Time
}

func NewRedisPublisher(rc Setter, keyspace string, ttl time.Duration) *RedisPublisher {
	if keyspace == "" {
		keyspace = "boundary"
	}
	return &RedisPublisher{rc: rc, keyspace: keyspace, ttl: ttl, now: time.Now}
}

func (p *RedisPublisher) Name() string { return "redis" }

func (p *RedisPublisher) Key(suffix string) string { return p.keyspace + ":" + suffix }

func (p *RedisPublisher) Publish(ctx context.Context, res *boundary.Result) error {
	fb, err := boundary.Encode(res.Merged)
	if err != nil {
		return err
	}
	nb, err := boundary.Encode(res.Names)
	if err != nil {
		return err
	}
	if err := p.rc.Set(ctx, p.Key("features"), fb, p.ttl).Err(); err != nil {
		return err
	}
	if err := p.rc.Set(ctx, p.Key("names"), nb, p.ttl).Err(); err != nil {
		return err
	}
	return p.rc.Set(ctx, p.Key("updated_at"), p.now().UTC().Format(time.RFC3339), p.ttl).Err()
}
