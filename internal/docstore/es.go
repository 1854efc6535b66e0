package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cenkalti/backoff/v4"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
)

type ESConfig struct {
	Addresses []string
	Username  string
	Password  string
}

// ESStore implements Store on the official Elasticsearch client. Every
// call runs under the default retry policy; Ping uses the probe policy.
type ESStore struct {
	client *elasticsearch.Client
	retry  RetryPolicy
}

func NewESStore(cfg ESConfig) (*ESStore, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("init elasticsearch client: %w", err)
	}
	return &ESStore{client: client, retry: DefaultRetryPolicy}, nil
}

func (s *ESStore) Ping(ctx context.Context) error {
	err := ProbeRetryPolicy.Run(ctx, "ping", func() error {
		resp, err := s.client.Ping(s.client.Ping.WithContext(ctx))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return fmt.Errorf("ping status %d", resp.StatusCode)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", appErr.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *ESStore) IndexExists(ctx context.Context, index string) (bool, error) {
	var exists bool
	err := s.retry.Run(ctx, "index_exists", func() error {
		resp, err := s.client.Indices.Exists([]string{index}, s.client.Indices.Exists.WithContext(ctx))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		switch resp.StatusCode {
		case 200:
			exists = true
			return nil
		case 404:
			exists = false
			return nil
		default:
			return statusErr(resp)
		}
	})
	return exists, err
}

func (s *ESStore) EnsureIndex(ctx context.Context, index string, mapping string) error {
	exists, err := s.IndexExists(ctx, index)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.retry.Run(ctx, "create_index", func() error {
		opts := []func(*esapi.IndicesCreateRequest){
			s.client.Indices.Create.WithContext(ctx),
		}
		if mapping != "" {
			opts = append(opts, s.client.Indices.Create.WithBody(strings.NewReader(mapping)))
		}
		resp, err := s.client.Indices.Create(index, opts...)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		// A concurrent creator winning the race is fine.
		if resp.IsError() && resp.StatusCode != 400 {
			return statusErr(resp)
		}
		return nil
	})
}

func (s *ESStore) Insert(ctx context.Context, index string, doc interface{}) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return backoff.Permanent(fmt.Errorf("encode document: %w", err))
	}
	return s.retry.Run(ctx, "insert", func() error {
		resp, err := s.client.Index(index, bytes.NewReader(payload),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithRefresh("true"))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return statusErr(resp)
		}
		return nil
	})
}

func (s *ESStore) BulkInsert(ctx context.Context, index string, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, doc := range docs {
		meta, _ := json.Marshal(map[string]interface{}{"index": map[string]interface{}{"_index": index}})
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode bulk document: %w", err)
		}
		buf.Write(meta)
		buf.WriteByte('\n')
		buf.Write(payload)
		buf.WriteByte('\n')
	}
	return s.retry.Run(ctx, "bulk_insert", func() error {
		resp, err := s.client.Bulk(bytes.NewReader(buf.Bytes()),
			s.client.Bulk.WithContext(ctx),
			s.client.Bulk.WithRefresh("true"))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return statusErr(resp)
		}
		return nil
	})
}

func (s *ESStore) Search(ctx context.Context, index string, q Query) ([]Hit, error) {
	body, err := json.Marshal(buildQueryBody(q))
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	var hits []Hit
	err = s.retry.Run(ctx, "search", func() error {
		resp, err := s.client.Search(
			s.client.Search.WithContext(ctx),
			s.client.Search.WithIndex(index),
			s.client.Search.WithBody(bytes.NewReader(body)))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return statusErr(resp)
		}
		var parsed struct {
			Hits struct {
				Hits []struct {
					ID     string          `json:"_id"`
					Source json.RawMessage `json:"_source"`
				} `json:"hits"`
			} `json:"hits"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("decode search response: %w", err))
		}
		hits = hits[:0]
		for _, h := range parsed.Hits.Hits {
			hits = append(hits, Hit{ID: h.ID, Source: h.Source})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hits, nil
}

func (s *ESStore) Count(ctx context.Context, index string, terms map[string]interface{}) (int, error) {
	body, err := json.Marshal(buildQueryBody(Query{Terms: terms}))
	if err != nil {
		return 0, fmt.Errorf("encode query: %w", err)
	}
	var count int
	err = s.retry.Run(ctx, "count", func() error {
		resp, err := s.client.Count(
			s.client.Count.WithContext(ctx),
			s.client.Count.WithIndex(index),
			s.client.Count.WithBody(bytes.NewReader(body)))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() {
			return statusErr(resp)
		}
		var parsed struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return backoff.Permanent(fmt.Errorf("decode count response: %w", err))
		}
		count = parsed.Count
		return nil
	})
	return count, err
}

func (s *ESStore) Delete(ctx context.Context, index string, id string) error {
	return s.retry.Run(ctx, "delete", func() error {
		resp, err := s.client.Delete(index, id, s.client.Delete.WithContext(ctx))
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.IsError() && resp.StatusCode != 404 {
			return statusErr(resp)
		}
		return nil
	})
}

// buildQueryBody translates Query into the search DSL. Match clauses
// use operator=and so every token of the value must hit; plain term-
// overlap scoring would make "HDFC Credit Card" match every card.
func buildQueryBody(q Query) map[string]interface{} {
	body := map[string]interface{}{}
	if q.Size > 0 {
		body["size"] = q.Size
	}
	if len(q.Sort) > 0 {
		sorts := make([]interface{}, 0, len(q.Sort))
		for _, s := range q.Sort {
			order := "asc"
			if s.Desc {
				order = "desc"
			}
			sorts = append(sorts, map[string]interface{}{s.Field: map[string]interface{}{"order": order}})
		}
		body["sort"] = sorts
	}
	must := make([]interface{}, 0, len(q.Terms)+len(q.Match))
	for field, value := range q.Terms {
		must = append(must, map[string]interface{}{"term": map[string]interface{}{field: value}})
	}
	for field, value := range q.Match {
		must = append(must, map[string]interface{}{
			"match": map[string]interface{}{
				field: map[string]interface{}{"query": value, "operator": "and"},
			},
		})
	}
	if len(must) == 0 {
		body["query"] = map[string]interface{}{"match_all": map[string]interface{}{}}
	} else {
		body["query"] = map[string]interface{}{"bool": map[string]interface{}{"must": must}}
	}
	return body
}

func statusErr(resp *esapi.Response) error {
	err := fmt.Errorf("elasticsearch status %d", resp.StatusCode)
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return backoff.Permanent(err)
	}
	return err
}
