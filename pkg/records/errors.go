package records

import "fmt"

// NotFoundError is returned when an item id does not exist in a
// collection.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q item %q not found", e.Resource, e.ID)
}
