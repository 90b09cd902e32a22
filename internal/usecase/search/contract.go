package search

import (
	"time"

	"github.com/kailas-cloud/formsearch/internal/domain/search/mode"
)

// Observer receives search and index telemetry.
type Observer interface {
	ObserveSearch(m mode.Mode, latency time.Duration, totalMatches int, limited bool)
	ObserveRebuild(size int, latency time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObserveSearch(mode.Mode, time.Duration, int, bool) {}
func (nopObserver) ObserveRebuild(int, time.Duration)                 {}
