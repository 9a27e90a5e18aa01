package catalog

// Catalog is the read-only plant/department/resource lookup service the
// engine consumes. Bulk reconciliation resolves externally-named resource
// references through it; the span calculator enumerates eligible
// resources from it.
type Catalog interface {
	// ResourceList returns every resource in the catalog.
	ResourceList() []*Resource

	// Resource resolves a plant/department/resource key. Returns nil when
	// the resource does not exist; a missing resource is a validation
	// concern for the caller, not an error here.
	Resource(plant, department, resource string) *Resource
}
