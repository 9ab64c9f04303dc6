package sink

import (
	"context"
	"sync"

	"github.com/null8bit/log-archive-processor/types"
)

// MemorySink is an in-process Sink backed by plain slices, guarded by a
// mutex. It never fails, making it a convenient Sink for tests.
type MemorySink struct {
	mutex    sync.Mutex
	creds    []types.Credential
	bundles  []*types.CookieBundle
	closed   bool
}

// NewMemorySink returns a ready-to-use MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// BulkInsertCredentials implements Sink.
func (m *MemorySink) BulkInsertCredentials(ctx context.Context, batch []types.Credential) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.creds = append(m.creds, batch...)
	return nil
}

// BulkInsertCookieBundles implements Sink.
func (m *MemorySink) BulkInsertCookieBundles(ctx context.Context, batch []*types.CookieBundle) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.bundles = append(m.bundles, batch...)
	return nil
}

// Close implements Sink.
func (m *MemorySink) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.closed = true
	return nil
}

// Credentials returns a snapshot of every credential inserted so far.
func (m *MemorySink) Credentials() []types.Credential {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]types.Credential, len(m.creds))
	copy(out, m.creds)
	return out
}

// CookieBundles returns a snapshot of every cookie bundle inserted so far.
func (m *MemorySink) CookieBundles() []*types.CookieBundle {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]*types.CookieBundle, len(m.bundles))
	copy(out, m.bundles)
	return out
}
