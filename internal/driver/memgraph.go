package driver

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
)

type MemgraphDriver struct {
	Driver neo4j.DriverWithContext
	logger zerolog.Logger
}

func NewMemgraphDriver(uri, username, password string, logger zerolog.Logger) (*MemgraphDriver, error) {
	d, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := d.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	logger.Info().Str("uri", uri).Msg("connected to Memgraph")
	return &MemgraphDriver{Driver: d, logger: logger}, nil
}

func (d *MemgraphDriver) Close(ctx context.Context) error {
	return d.Driver.Close(ctx)
}

func (d *MemgraphDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, d.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (d *MemgraphDriver) BuildIndices(ctx context.Context) error {
	queries := []string{
		"CREATE INDEX ON :Item(uuid);",
		"CREATE INDEX ON :Item(owner_id);",
	}

	for _, q := range queries {
		// Index may already exist; keep going.
		if _, err := d.ExecuteQuery(ctx, q, nil); err != nil {
			d.logger.Warn().Err(err).Str("query", q).Msg("failed to create index")
		}
	}

	return nil
}
