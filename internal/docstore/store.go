// Package docstore is a thin facade over a term/match/bool indexed
// document service. Production runs against Elasticsearch; the
// in-memory implementation backs tests and cluster-less local runs.
package docstore

import (
	"context"
	"encoding/json"
)

// Sort is one ordering clause, applied in declaration order.
type Sort struct {
	Field string
	Desc  bool
}

// Query is the subset of the bool-query DSL the gateway needs. Terms
// are exact keyword filters; Match clauses are analyzed text matches
// where every token of the value must be present in the field. An
// empty query matches everything.
type Query struct {
	Size  int
	Sort  []Sort
	Terms map[string]interface{}
	Match map[string]string
}

// Hit is one search result in index order.
type Hit struct {
	ID     string
	Source json.RawMessage
}

func (h Hit) Decode(dst interface{}) error {
	return json.Unmarshal(h.Source, dst)
}

type Store interface {
	Ping(ctx context.Context) error
	EnsureIndex(ctx context.Context, index string, mapping string) error
	IndexExists(ctx context.Context, index string) (bool, error)
	Insert(ctx context.Context, index string, doc interface{}) error
	BulkInsert(ctx context.Context, index string, docs []interface{}) error
	Search(ctx context.Context, index string, q Query) ([]Hit, error)
	Count(ctx context.Context, index string, terms map[string]interface{}) (int, error)
	Delete(ctx context.Context, index string, id string) error
}
