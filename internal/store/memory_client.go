package store

import (
	"context"
	"sync"
)

// MemoryClient is a simple in-memory implementation of the Client interface
// used for unit testing repository logic without a running MongoDB instance.
type MemoryClient struct {
	mu           sync.Mutex
	collections  map[string][]Record
	inserted     map[string][]Record
	scans        []string
	err          error
	connectivity error
}

// NewMemoryClient instantiates the in-memory client with empty collections.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		collections: make(map[string][]Record),
		inserted:    make(map[string][]Record),
	}
}

// WithError configures the client to return the provided error for subsequent calls.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces Ping to return the supplied error.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

// SetCollection replaces the canned documents returned for a collection scan.
func (m *MemoryClient) SetCollection(name string, records []Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[name] = records
}

func (m *MemoryClient) FindAll(_ context.Context, collection string) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}

	m.scans = append(m.scans, collection)
	return cloneRecords(m.collections[collection]), nil
}

func (m *MemoryClient) InsertMany(_ context.Context, collection string, docs []Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	m.inserted[collection] = append(m.inserted[collection], cloneRecords(docs)...)
	return nil
}

func (m *MemoryClient) Ping(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Scans returns the collections scanned so far, in call order.
func (m *MemoryClient) Scans() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.scans...)
}

// Inserted returns the documents inserted into the named collection.
func (m *MemoryClient) Inserted(collection string) []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneRecords(m.inserted[collection])
}

func cloneRecords(src []Record) []Record {
	if src == nil {
		return nil
	}
	dst := make([]Record, 0, len(src))
	for _, rec := range src {
		copied := make(Record, len(rec))
		for k, v := range rec {
			copied[k] = v
		}
		dst = append(dst, copied)
	}
	return dst
}
