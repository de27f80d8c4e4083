package boundary

import (
	"boundary-extract/internal/logger"
	"errors"
	"fmt"
	"time"
)

// Options：一次提取运行所需的全部输入
type Options struct {
	PrimaryPath   string
	SecondaryPath string
	OutPath       string
	NamesOutPath  string
	// TargetName 为副数据源中要并入的要素名称
	TargetName string
	// SourceKey 为副数据源的地名键，NameKey 为主数据源与产物的地名键
	SourceKey       string
	NameKey         string
	AllowList       AllowList
	StrictAllowList bool
}

// Summary：运行摘要，供日志与发布端记录
type Summary struct {
	Target       string
	Total        int
	Kept         int
	Missing      []string
	OutPath      string
	NamesOutPath string
	Duration     time.Duration
}

// Result：合并后的集合、地名列表与摘要
type Result struct {
	Merged  *FeatureCollection
	Names   []string
	Summary Summary
}

// Pipeline：单次、同步的提取流程；不持有跨运行状态，可对不同路径组并行使用
type Pipeline struct {
	opts Options
}

func NewPipeline(opts Options) *Pipeline { return &Pipeline{opts: opts} }

// Build：读取两个数据源并完成全部计算，不写文件
// 约束：所有读取先于计算；找不到目标要素时错误中带上副数据源路径
func (p *Pipeline) Build() (*Result, error) {
	l := logger.L()
	o := p.opts
	primary, err := Load(o.PrimaryPath)
	if err != nil {
		return nil, err
	}
	l.Debug("boundary_load_ok", "path", o.PrimaryPath, "features", len(primary.Features))
	secondary, err := Load(o.SecondaryPath)
	if err != nil {
		return nil, err
	}
	l.Debug("boundary_load_ok", "path", o.SecondaryPath, "features", len(secondary.Features))

	filtered := FilterByAllowList(primary, o.AllowList, o.NameKey)
	missing := o.AllowList.Missing(primary, o.NameKey)
	if len(missing) > 0 {
		l.Warn("allowlist_missing", "names", missing)
		if o.StrictAllowList {
			return nil, fmt.Errorf("%w: %v", ErrAllowListCoverage, missing)
		}
	}

	ext, err := ExtractNamedFeature(secondary, o.SourceKey, o.TargetName, o.NameKey)
	if err != nil {
		var nf *FeatureNotFoundError
		if errors.As(err, &nf) {
			nf.Path = o.SecondaryPath
		}
		return nil, err
	}
	merged := MergeFeature(filtered, ext)
	names := CollectNames(primary, o.NameKey, o.TargetName)
	l.Debug("boundary_merge_ok", "kept", len(filtered.Features), "merged", len(merged.Features), "names", len(names))

	return &Result{
		Merged: merged,
		Names:  names,
		Summary: Summary{
			Target:       o.TargetName,
			Total:        len(primary.Features),
			Kept:         len(filtered.Features),
			Missing:      missing,
			OutPath:      o.OutPath,
			NamesOutPath: o.NamesOutPath,
		},
	}, nil
}

// Run：Build 后成对写出合并集合与地名列表
// 约束：计算全部完成后才开始写；两个产物都落到临时文件后才替换目标
func (p *Pipeline) Run() (*Result, error) {
	start := time.Now()
	res, err := p.Build()
	if err != nil {
		return nil, err
	}
	err = WriteArtifacts(
		Artifact{Path: p.opts.OutPath, Value: res.Merged},
		Artifact{Path: p.opts.NamesOutPath, Value: res.Names},
	)
	if err != nil {
		return nil, err
	}
	logger.L().Info("artifact_written", "path", p.opts.OutPath, "features", len(res.Merged.Features))
	logger.L().Info("artifact_written", "path", p.opts.NamesOutPath, "names", len(res.Names))
	res.Summary.Duration = time.Since(start)
	return res, nil
}
