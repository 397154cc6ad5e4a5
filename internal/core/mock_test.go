package core

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver returns canned results per query string and records every call.
type MockDriver struct {
	Results map[string]neo4j.EagerResult
	Queries []string
	Params  []map[string]interface{}
	Err     error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.Queries = append(m.Queries, query)
	m.Params = append(m.Params, params)
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.Results[query], nil
}

func (m *MockDriver) BuildIndices(ctx context.Context) error {
	return nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func record(keys []string, values ...interface{}) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

var itemKeys = []string{"uuid", "owner_id", "name", "description", "wodis_number", "purchase_date", "created_at"}

func itemRecord(uuid, owner, name, description, wodis string, purchaseDate interface{}) *neo4j.Record {
	return record(itemKeys, uuid, owner, name, description, wodis, purchaseDate, "2024-01-01T00:00:00Z")
}
