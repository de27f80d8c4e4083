package publish

import (
	"boundary-extract/internal/boundary"
	"boundary-extract/internal/store"
	"context"
)

// PostgresPublisher：整表替换 _boundary_features 并记录运行摘要
type PostgresPublisher struct {
	st      *store.Store
	nameKey string
}

func NewPostgresPublisher(st *store.Store, nameKey string) *PostgresPublisher {
	return &PostgresPublisher{st: st, nameKey: nameKey}
}

func (p *PostgresPublisher) Name() string { return "postgres" }

func (p *PostgresPublisher) Publish(ctx context.Context, res *boundary.Result) error {
	if err := p.st.ReplaceFeatures(ctx, res.Merged, p.nameKey); err != nil {
		return err
	}
	_, err := p.st.RecordRun(ctx, res.Summary, res.Names)
	return err
}
