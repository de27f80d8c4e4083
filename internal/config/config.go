// 包 config：提取工具的运行配置；路径等均有编译期默认值，环境变量（含 .env）可覆盖
package config

import (
	"boundary-extract/internal/boundary"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPrimaryPath   = "./data/community_boundaries.json"
	DefaultSecondaryPath = "./data/region_boundaries.json"
	DefaultOutPath       = "./src/lib/references/counties.json"
	DefaultNamesOutPath  = "./src/lib/references/cities.json"
	DefaultTargetName    = "Windsor"
	DefaultSourceKey     = "NAME"
	DefaultNameKey       = "name"
)

// DefaultAllowList：与底特律接壤的市镇
var DefaultAllowList = []string{
	"Detroit",
	"Redford Twp",
	"Southfield",
	"Oak Park",
	"Royal Oak Twp",
	"Ferndale",
	"Hazel Park",
	"Warren",
	"Eastpointe",
	"Harper Woods",
	"Grosse Pointe Woods",
	"Grosse Pointe Farms",
	"Grosse Pointe",
	"Grosse Pointe Park",
	"Hamtramck",
	"Detroit River",
	"Highland Park",
	"River Rouge",
	"Ecorse",
	"Lincoln Park",
	"Melvindale",
	"Dearborn",
	"Dearborn Heights",
}

// AllowListFile：BOUNDARY_ALLOWLIST_FILE 指向的 YAML 结构
type AllowListFile struct {
	Names []string `yaml:"names"`
}

// Publish：可选发布端开关
type Publish struct {
	Postgres      bool
	Redis         bool
	RedisTTLSec   int
	RedisKeyspace string
}

// Config：一次运行的完整配置
type Config struct {
	Boundary           boundary.Options
	AllowListSource    string
	Publish            Publish
	MetricsPushgateway string
}

// Getenv 与 os.Getenv 同签名，便于测试注入
type Getenv func(string) string

// Load：从进程环境读取配置
func Load() (*Config, error) { return LoadFrom(os.Getenv) }

// LoadFrom：从给定的查找函数读取配置
// 约束：白名单文件存在时完全替换默认白名单；布尔值接受 strconv.ParseBool 的写法
func LoadFrom(getenv Getenv) (*Config, error) {
	str := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	strict, err := parseBool(getenv("BOUNDARY_STRICT_ALLOWLIST"))
	if err != nil {
		return nil, fmt.Errorf("config: BOUNDARY_STRICT_ALLOWLIST: %w", err)
	}
	names := DefaultAllowList
	src := "default"
	if p := strings.TrimSpace(getenv("BOUNDARY_ALLOWLIST_FILE")); p != "" {
		names, err = LoadAllowListFile(p)
		if err != nil {
			return nil, err
		}
		src = p
	}
	cfg := &Config{
		Boundary: boundary.Options{
			PrimaryPath:     str("BOUNDARY_PRIMARY_PATH", DefaultPrimaryPath),
			SecondaryPath:   str("BOUNDARY_SECONDARY_PATH", DefaultSecondaryPath),
			OutPath:         str("BOUNDARY_OUT_PATH", DefaultOutPath),
			NamesOutPath:    str("BOUNDARY_NAMES_OUT_PATH", DefaultNamesOutPath),
			TargetName:      str("BOUNDARY_TARGET_NAME", DefaultTargetName),
			SourceKey:       str("BOUNDARY_SOURCE_KEY", DefaultSourceKey),
			NameKey:         str("BOUNDARY_NAME_KEY", DefaultNameKey),
			AllowList:       boundary.NewAllowList(names...),
			StrictAllowList: strict,
		},
		AllowListSource:    src,
		MetricsPushgateway: strings.TrimSpace(getenv("METRICS_PUSHGATEWAY")),
	}
	if cfg.Boundary.OutPath == cfg.Boundary.NamesOutPath {
		return nil, errors.New("config: BOUNDARY_OUT_PATH and BOUNDARY_NAMES_OUT_PATH must differ")
	}
	if cfg.Publish.Postgres, err = parseBool(getenv("PUBLISH_POSTGRES")); err != nil {
		return nil, fmt.Errorf("config: PUBLISH_POSTGRES: %w", err)
	}
	if cfg.Publish.Redis, err = parseBool(getenv("PUBLISH_REDIS")); err != nil {
		return nil, fmt.Errorf("config: PUBLISH_REDIS: %w", err)
	}
	if v := strings.TrimSpace(getenv("REDIS_TTL_SECONDS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("config: REDIS_TTL_SECONDS: invalid value %q", v)
		}
		cfg.Publish.RedisTTLSec = n
	}
	cfg.Publish.RedisKeyspace = str("REDIS_KEYSPACE", "boundary")
	return cfg, nil
}

// LoadAllowListFile：读取 YAML 白名单
// 约束：不允许空列表、空名称与重复名称，避免静默丢失要素
func LoadAllowListFile(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read allow-list %s: %w", path, err)
	}
	var f AllowListFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("config: parse allow-list %s: %w", path, err)
	}
	if len(f.Names) == 0 {
		return nil, fmt.Errorf("config: allow-list %s has no names", path)
	}
	seen := make(map[string]struct{}, len(f.Names))
	for i, n := range f.Names {
		if strings.TrimSpace(n) == "" {
			return nil, fmt.Errorf("config: allow-list %s: empty name at index %d", path, i)
		}
		if _, ok := seen[n]; ok {
			return nil, fmt.Errorf("config: allow-list %s: duplicate name %q", path, n)
		}
		seen[n] = struct{}{}
	}
	return f.Names, nil
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
