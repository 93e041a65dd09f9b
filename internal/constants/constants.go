package constants

const (
	// MinPageSize is the smallest accepted page number and page size.
	MinPageSize = 1
	// DefaultPageSize is used when no limit is supplied.
	DefaultPageSize = 20
	// MaxPageSize caps the limit query parameter.
	MaxPageSize = 100
)

// UncategorizedLabel groups todos without a category in statistics.
const UncategorizedLabel = "uncategorized"
