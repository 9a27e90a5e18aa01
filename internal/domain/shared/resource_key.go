package shared

import "fmt"

// ResourceKey identifies a resource within the plant catalog.
// Keys are value objects shared between the lookup tables (assignment
// lists) and the catalog itself.
type ResourceKey struct {
	Plant      string
	Department string
	Resource   string
}

// NewResourceKey creates a ResourceKey, validating that no part is empty.
func NewResourceKey(plant, department, resource string) (ResourceKey, error) {
	if plant == "" || department == "" || resource == "" {
		return ResourceKey{}, NewValidationError("resource_key",
			fmt.Sprintf("plant/department/resource must all be set, got %q/%q/%q", plant, department, resource))
	}
	return ResourceKey{Plant: plant, Department: department, Resource: resource}, nil
}

// String returns the canonical plant/department/resource form.
func (k ResourceKey) String() string {
	return k.Plant + "/" + k.Department + "/" + k.Resource
}

// IsZero reports whether the key is the zero value.
func (k ResourceKey) IsZero() bool {
	return k == ResourceKey{}
}
