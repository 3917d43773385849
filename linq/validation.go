package linq

import (
	"errors"
	"fmt"
)

// Validation constants to keep parsing bounded
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxExpressionDepth is the maximum nesting depth of calls and property paths
	MaxExpressionDepth = 100
)

var (
	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = errors.New("query too long")

	// ErrExpressionTooDeep is returned when expression nesting exceeds limit
	ErrExpressionTooDeep = errors.New("expression nesting too deep")
)

// ValidateQuery checks the query text before it is scanned
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// depthCounter tracks expression nesting depth
type depthCounter struct {
	depth    int
	maxDepth int
}

func newDepthCounter() *depthCounter {
	return &depthCounter{maxDepth: MaxExpressionDepth}
}

// Enter increments depth and reports whether the limit still holds
func (c *depthCounter) Enter() bool {
	c.depth++
	return c.depth <= c.maxDepth
}

// Exit decrements depth
func (c *depthCounter) Exit() {
	c.depth--
}
