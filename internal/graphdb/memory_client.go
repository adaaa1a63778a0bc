package graphdb

import (
	"context"
	"maps"
	"sync"
)

// MemoryClient records executed statements and answers reads from a
// caller-supplied handler. It stands in for a database in tests.
type MemoryClient struct {
	mu           sync.Mutex
	writeCalls   []ExecutedQuery
	readCalls    []ExecutedQuery
	onRead       func(cypher string, params map[string]any) (Result, error)
	writeErr     error
	connectivity error
}

// ExecutedQuery captures a cypher statement and the parameters it ran with.
type ExecutedQuery struct {
	Query  string
	Params map[string]any
}

// NewMemoryClient returns a client that accepts every write and reads nothing.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// OnRead installs the handler answering ExecuteRead.
func (m *MemoryClient) OnRead(fn func(cypher string, params map[string]any) (Result, error)) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onRead = fn
	return m
}

// WithWriteError makes every subsequent ExecuteWrite fail with err.
func (m *MemoryClient) WithWriteError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.writeErr != nil {
		return Result{}, m.writeErr
	}
	m.writeCalls = append(m.writeCalls, ExecutedQuery{Query: cypher, Params: maps.Clone(params)})
	return Result{}, nil
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	m.readCalls = append(m.readCalls, ExecutedQuery{Query: cypher, Params: maps.Clone(params)})
	onRead := m.onRead
	m.mu.Unlock()

	if onRead == nil {
		return Result{}, nil
	}
	return onRead(cypher, params)
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// WriteCalls returns a snapshot of executed write statements.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.writeCalls...)
}

// ReadCalls returns a snapshot of executed read statements.
func (m *MemoryClient) ReadCalls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.readCalls...)
}
