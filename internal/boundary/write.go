package boundary

import (
	"os"
	"path/filepath"
)

// Artifact：待写出的一个产物
type Artifact struct {
	Path  string
	Value any
}

type staged struct {
	path string
	tmp  string
}

// stage：完整序列化后写入目标目录下的临时文件并 fsync，不触碰目标文件
func stage(a Artifact) (*staged, error) {
	b, err := Encode(a.Value)
	if err != nil {
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	dir := filepath.Dir(a.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(a.Path)+".tmp-*")
	if err != nil {
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	tmp := f.Name()
	fail := func(err error) (*staged, error) {
		_ = f.Close()
		_ = os.Remove(tmp)
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	if _, err := f.Write(b); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return nil, &WriteError{Path: a.Path, Err: err}
	}
	return &staged{path: a.Path, tmp: tmp}, nil
}

// WriteArtifacts：两阶段写出
// 背景：边界集合与地名列表需成对更新，任何一个无法落盘时两个目标都保持原样
// 约束：先为全部产物生成临时文件，全部成功后才依次 rename；失败时清理所有临时文件，返回 *WriteError
func WriteArtifacts(arts ...Artifact) error {
	var ready []*staged
	discard := func() {
		for _, s := range ready {
			_ = os.Remove(s.tmp)
		}
	}
	for _, a := range arts {
		s, err := stage(a)
		if err != nil {
			discard()
			return err
		}
		ready = append(ready, s)
	}
	for i, s := range ready {
		if err := os.Rename(s.tmp, s.path); err != nil {
			for _, rest := range ready[i:] {
				_ = os.Remove(rest.tmp)
			}
			return &WriteError{Path: s.path, Err: err}
		}
	}
	return nil
}

// WriteArtifact：单个产物的原子替换
func WriteArtifact(path string, v any) error {
	return WriteArtifacts(Artifact{Path: path, Value: v})
}
