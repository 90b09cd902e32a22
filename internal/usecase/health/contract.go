package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexSizer reports how many forms the search index holds.
type IndexSizer interface {
	Size() int
}
