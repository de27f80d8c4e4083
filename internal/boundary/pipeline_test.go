package boundary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primaryFixture = `{
  "type": "FeatureCollection",
  "name": "community_boundaries",
  "features": [
    {"type": "Feature", "properties": {"name": "Detroit", "fid": 1}, "geometry": {"type": "Polygon", "coordinates": [[[-83.28, 42.25], [-82.91, 42.25], [-82.91, 42.45], [-83.28, 42.45], [-83.28, 42.25]]]}},
    {"type": "Feature", "properties": {"name": "Southfield", "fid": 2}, "geometry": {"type": "Polygon", "coordinates": [[[-83.32, 42.45], [-83.20, 42.45], [-83.20, 42.52], [-83.32, 42.52], [-83.32, 42.45]]]}},
    {"type": "Feature", "properties": {"name": "Ann Arbor", "fid": 3}, "geometry": {"type": "Polygon", "coordinates": [[[-83.80, 42.22], [-83.67, 42.22], [-83.67, 42.32], [-83.80, 42.32], [-83.80, 42.22]]]}}
  ]
}`

const secondaryFixture = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"NAME": "Windsor", "PRUID": "35"}, "geometry": {"type": "Polygon", "coordinates": [[[-83.11, 42.23], [-82.90, 42.23], [-82.90, 42.34], [-83.11, 42.34], [-83.11, 42.23]]]}}
  ]
}`

func writeFixtures(t *testing.T, primary, secondary string) Options {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "data", "community_boundaries.json")
	s := filepath.Join(dir, "data", "region_boundaries.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(primary), 0o644))
	require.NoError(t, os.WriteFile(s, []byte(secondary), 0o644))
	return Options{
		PrimaryPath:   p,
		SecondaryPath: s,
		OutPath:       filepath.Join(dir, "out", "counties.json"),
		NamesOutPath:  filepath.Join(dir, "out", "cities.json"),
		TargetName:    "Windsor",
		SourceKey:     "NAME",
		NameKey:       "name",
		AllowList:     NewAllowList("Detroit", "Southfield"),
	}
}

func TestPipelineRun(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, secondaryFixture)
	res, err := NewPipeline(opts).Run()
	require.NoError(t, err)

	assert.Equal(t, []string{"Detroit", "Southfield", "Windsor"}, CollectNames(res.Merged, "name"))
	assert.Equal(t, []string{"Windsor", "Detroit", "Southfield", "Ann Arbor"}, res.Names)
	assert.Equal(t, 3, res.Summary.Total)
	assert.Equal(t, 2, res.Summary.Kept)
	assert.Empty(t, res.Summary.Missing)

	merged, err := Load(opts.OutPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"Detroit", "Southfield", "Windsor"}, CollectNames(merged, "name"))
	assert.Equal(t, `"community_boundaries"`, string(merged.ExtraMembers["name"]))
	windsor := merged.Features[2]
	assert.NotContains(t, windsor.Properties, "NAME")
	assert.Equal(t, "35", windsor.Properties["PRUID"])

	names, err := os.ReadFile(opts.NamesOutPath)
	require.NoError(t, err)
	assert.JSONEq(t, `["Windsor","Detroit","Southfield","Ann Arbor"]`, string(names))
}

func TestPipelineRerunIsByteIdentical(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, secondaryFixture)
	_, err := NewPipeline(opts).Run()
	require.NoError(t, err)
	first, err := os.ReadFile(opts.OutPath)
	require.NoError(t, err)
	firstNames, err := os.ReadFile(opts.NamesOutPath)
	require.NoError(t, err)

	_, err = NewPipeline(opts).Run()
	require.NoError(t, err)
	second, err := os.ReadFile(opts.OutPath)
	require.NoError(t, err)
	secondNames, err := os.ReadFile(opts.NamesOutPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, firstNames, secondNames)
}

func TestPipelineFeatureNotFound(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"NAME":"Essex"},"geometry":{"type":"Point","coordinates":[-82.8,42.1]}}
	]}`)
	_, err := NewPipeline(opts).Run()
	var nf *FeatureNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, opts.SecondaryPath, nf.Path)
	assert.Contains(t, err.Error(), "Windsor")

	_, statErr := os.Stat(opts.OutPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	_, statErr = os.Stat(opts.NamesOutPath)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestPipelineLoadError(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, secondaryFixture)
	opts.SecondaryPath = filepath.Join(t.TempDir(), "missing.json")
	_, err := NewPipeline(opts).Run()
	var le *DataLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, opts.SecondaryPath, le.Path)
}

func TestPipelineStrictAllowList(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, secondaryFixture)
	opts.AllowList = NewAllowList("Detroit", "Warren")

	res, err := NewPipeline(opts).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"Warren"}, res.Summary.Missing)

	opts.StrictAllowList = true
	_, err = NewPipeline(opts).Build()
	assert.ErrorIs(t, err, ErrAllowListCoverage)
}

func TestPipelineBuildLeavesSourcesUntouched(t *testing.T) {
	opts := writeFixtures(t, primaryFixture, secondaryFixture)
	before, err := os.ReadFile(opts.SecondaryPath)
	require.NoError(t, err)
	_, err = NewPipeline(opts).Build()
	require.NoError(t, err)

	after, err := Load(opts.SecondaryPath)
	require.NoError(t, err)
	assert.Equal(t, "Windsor", after.Features[0].Properties["NAME"])
	reread, err := os.ReadFile(opts.SecondaryPath)
	require.NoError(t, err)
	assert.Equal(t, before, reread)

	_, err = os.Stat(opts.OutPath)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
