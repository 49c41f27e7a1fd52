package render

import (
	"sync"

	"github.com/checksgo/engine/internal/checks"
	"github.com/checksgo/engine/internal/data"
)

// Memo caches rendered documents by token id for callers that display
// the same check repeatedly. Rendering stays an explicit call; the cache
// is owned by the caller, never by the check itself.
type Memo struct {
	mu   sync.Mutex
	docs map[checks.TokenID]string
}

func NewMemo() *Memo {
	return &Memo{docs: make(map[checks.TokenID]string)}
}

// SVG returns the cached document for id, rendering it on first use.
func (m *Memo) SVG(id checks.TokenID, c *checks.Check, vm checks.VirtualMap, p *data.Palette) (string, error) {
	m.mu.Lock()
	doc, ok := m.docs[id]
	m.mu.Unlock()
	if ok {
		return doc, nil
	}

	doc, err := SVG(c, vm, p)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	m.docs[id] = doc
	m.mu.Unlock()
	return doc, nil
}
