package memory

import (
	"context"
	"sync"

	domaincatalog "staybcn/internal/domain/catalog"
)

// Catalog is the in-memory unit registry: populated once at startup, read-only
// afterwards. List preserves insertion order.
type Catalog struct {
	mu    sync.RWMutex
	order []domaincatalog.UnitID
	items map[domaincatalog.UnitID]domaincatalog.Unit
}

// NewCatalog builds an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		items: make(map[domaincatalog.UnitID]domaincatalog.Unit),
	}
}

// Add registers a unit. Meant for startup fixture loading and tests; re-adding
// an id replaces the entry without changing its position.
func (c *Catalog) Add(unit domaincatalog.Unit) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[unit.ID]; !exists {
		c.order = append(c.order, unit.ID)
	}
	c.items[unit.ID] = unit
}

// List returns every unit in insertion order.
func (c *Catalog) List(ctx context.Context) ([]domaincatalog.Unit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	units := make([]domaincatalog.Unit, 0, len(c.order))
	for _, id := range c.order {
		units = append(units, c.items[id])
	}
	return units, nil
}

// ByID returns a unit or ErrUnitNotFound.
func (c *Catalog) ByID(ctx context.Context, id domaincatalog.UnitID) (domaincatalog.Unit, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	unit, ok := c.items[id]
	if !ok {
		return domaincatalog.Unit{}, domaincatalog.ErrUnitNotFound
	}
	return unit, nil
}

var _ domaincatalog.Catalog = (*Catalog)(nil)
