package catalog

import (
	domain "github.com/planforge/aps-go/internal/domain/catalog"
	"github.com/planforge/aps-go/internal/domain/shared"
)

// MemoryCatalog is the in-process implementation of the plant/resource
// catalog port. The engine treats it as read-only; registration happens
// during scenario construction, before any simulation pass runs.
type MemoryCatalog struct {
	resources map[shared.ResourceKey]*domain.Resource
	order     []shared.ResourceKey
}

// NewMemoryCatalog creates an empty catalog.
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{
		resources: make(map[shared.ResourceKey]*domain.Resource),
	}
}

// Register adds a resource. Re-registering a key replaces the resource.
func (c *MemoryCatalog) Register(r *domain.Resource) {
	if _, exists := c.resources[r.Key()]; !exists {
		c.order = append(c.order, r.Key())
	}
	c.resources[r.Key()] = r
}

// ResourceList returns every resource in registration order.
func (c *MemoryCatalog) ResourceList() []*domain.Resource {
	out := make([]*domain.Resource, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.resources[key])
	}
	return out
}

// Resource resolves a plant/department/resource key, or nil.
func (c *MemoryCatalog) Resource(plant, department, resource string) *domain.Resource {
	return c.resources[shared.ResourceKey{Plant: plant, Department: department, Resource: resource}]
}

var _ domain.Catalog = (*MemoryCatalog)(nil)
