package suggest

import "fmt"

// ServiceError reports a non-success response from the ranking service. The
// caller must treat it as recoverable: log it, drop the suggestion step and
// keep processing events.
type ServiceError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("suggest service returned %d: %s", e.Status, e.Body)
}
