package prediction

import (
	"fmt"
	"strings"
)

// NotFoundError reports an unknown region together with the accepted names
type NotFoundError struct {
	Region string
	Valid  []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Unknown region: %s. Available: %s", e.Region, strings.Join(e.Valid, ", "))
}
