package engine

import "vgsales/internal/models"

const (
	OtherPublisher = "Other Publisher"
	OtherPlatform  = "Other Platform"

	DefaultPublisherThreshold = 100
	DefaultPlatformThreshold  = 20
)

// TrimOptions sets the minimum frequency a publisher or platform needs to
// keep its own category in the trimmed table.
type TrimOptions struct {
	PublisherThreshold int
	PlatformThreshold  int
}

func DefaultTrimOptions() TrimOptions {
	return TrimOptions{
		PublisherThreshold: DefaultPublisherThreshold,
		PlatformThreshold:  DefaultPlatformThreshold,
	}
}

// Trim collapses infrequent publishers and platforms into "Other" buckets.
// The two columns are rewritten independently, each against its own counts
// over the input table.
func Trim(t *Table, opts TrimOptions) (*Table, error) {
	if opts.PublisherThreshold < 0 || opts.PlatformThreshold < 0 {
		return nil, invalidParameter("trim thresholds must be non-negative")
	}

	rows := make([]models.Row, len(t.rows))
	copy(rows, t.rows)

	pubCounts := make(map[string]int)
	platCounts := make(map[string]int)
	for i := range rows {
		pubCounts[rows[i].Publisher]++
		platCounts[rows[i].Platform]++
	}

	for i := range rows {
		if pubCounts[rows[i].Publisher] < opts.PublisherThreshold {
			rows[i].Publisher = OtherPublisher
		}
		if platCounts[rows[i].Platform] < opts.PlatformThreshold {
			rows[i].Platform = OtherPlatform
		}
	}
	return NewTable(rows), nil
}
