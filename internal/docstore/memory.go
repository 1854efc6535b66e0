package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	appErr "github.com/twidpay/intellisearch/internal/pkg/errors"
)

type memDoc struct {
	id     string
	seq    int
	fields map[string]interface{}
	raw    json.RawMessage
}

// MemoryStore is an in-process Store with the same query contract as
// the Elasticsearch implementation. Insertion order is preserved and
// used as the tiebreaker when no sort is given.
type MemoryStore struct {
	mu      sync.RWMutex
	indices map[string][]memDoc
	seq     int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indices: make(map[string][]memDoc)}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) EnsureIndex(ctx context.Context, index string, mapping string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.indices[index]; !ok {
		s.indices[index] = nil
	}
	return nil
}

func (s *MemoryStore) IndexExists(ctx context.Context, index string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.indices[index]
	return ok, nil
}

func (s *MemoryStore) Insert(ctx context.Context, index string, doc interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(index, doc)
}

func (s *MemoryStore) BulkInsert(ctx context.Context, index string, docs []interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		if err := s.insertLocked(index, doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) insertLocked(index string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	s.seq++
	s.indices[index] = append(s.indices[index], memDoc{
		id:     strconv.Itoa(s.seq),
		seq:    s.seq,
		fields: fields,
		raw:    raw,
	})
	return nil
}

func (s *MemoryStore) Search(ctx context.Context, index string, q Query) ([]Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs, ok := s.indices[index]
	if !ok {
		return nil, fmt.Errorf("%w: index %s", appErr.ErrNotFound, index)
	}
	matched := make([]memDoc, 0, len(docs))
	for _, doc := range docs {
		if matchesQuery(doc, q) {
			matched = append(matched, doc)
		}
	}
	sortDocs(matched, q.Sort)
	size := q.Size
	if size <= 0 || size > len(matched) {
		size = len(matched)
	}
	hits := make([]Hit, 0, size)
	for _, doc := range matched[:size] {
		hits = append(hits, Hit{ID: doc.id, Source: doc.raw})
	}
	return hits, nil
}

func (s *MemoryStore) Count(ctx context.Context, index string, terms map[string]interface{}) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, doc := range s.indices[index] {
		if matchesQuery(doc, Query{Terms: terms}) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) Delete(ctx context.Context, index string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := s.indices[index]
	for i, doc := range docs {
		if doc.id == id {
			s.indices[index] = append(docs[:i:i], docs[i+1:]...)
			return nil
		}
	}
	return nil
}

func matchesQuery(doc memDoc, q Query) bool {
	for field, want := range q.Terms {
		got, ok := doc.fields[field]
		if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}
	for field, value := range q.Match {
		got, ok := doc.fields[field]
		if !ok {
			return false
		}
		if !tokensContainAll(fmt.Sprint(got), value) {
			return false
		}
	}
	return true
}

// tokensContainAll mirrors an analyzed match with operator=and: every
// token of the query must appear as a token of the field.
func tokensContainAll(field, query string) bool {
	have := make(map[string]struct{})
	for _, tok := range tokenize(field) {
		have[tok] = struct{}{}
	}
	for _, tok := range tokenize(query) {
		if _, ok := have[tok]; !ok {
			return false
		}
	}
	return true
}

func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func sortDocs(docs []memDoc, clauses []Sort) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, clause := range clauses {
			cmp := compareValues(docs[i].fields[clause.Field], docs[j].fields[clause.Field])
			if cmp == 0 {
				continue
			}
			if clause.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return docs[i].seq < docs[j].seq
	})
}

func compareValues(a, b interface{}) int {
	af, aok := a.(float64)
	bf, bok := b.(float64)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}
	// Timestamps are stored in RFC 3339, so lexicographic order works.
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
