package search

import (
	"context"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kailas-cloud/formsearch/internal/domain/form"
	"github.com/kailas-cloud/formsearch/internal/domain/search/mode"
	"github.com/kailas-cloud/formsearch/internal/domain/search/request"
	"github.com/kailas-cloud/formsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/formsearch/internal/logger"
)

// Service ranks catalog forms against free-text queries.
// The index is an immutable snapshot swapped atomically by Rebuild, so Search
// may run concurrently with Rebuild.
type Service struct {
	idx      atomic.Pointer[index]
	tunables Tunables
	strict   matcher
	broad    matcher
	observer Observer
	logger   *zap.Logger
}

// New creates a search service over an empty catalog.
func New(t Tunables, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		tunables: t,
		strict:   newMatcher(t.StrictThreshold, t.CoveragePenalty, t.Weights),
		broad:    newMatcher(t.BroadThreshold, t.CoveragePenalty, t.Weights),
		observer: nopObserver{},
		logger:   logger,
	}
	s.idx.Store(buildIndex(nil))
	return s
}

// WithObserver sets the telemetry sink.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// Rebuild replaces the whole index with one built from forms.
func (s *Service) Rebuild(forms []form.Form) {
	start := time.Now()
	idx := buildIndex(forms)
	s.idx.Store(idx)

	latency := time.Since(start)
	s.observer.ObserveRebuild(len(idx.entries), latency)
	s.logger.Info("search index rebuilt",
		zap.Int("forms", len(idx.entries)),
		zap.Duration("latency", latency),
	)
}

// Size returns the number of indexed forms.
func (s *Service) Size() int {
	return len(s.idx.Load().entries)
}

// Search returns the forms best matching req, best first. It never fails:
// an empty query browses the catalog, an unmatched query falls back to a
// substring scan, and a fully gated result falls back to the ungated top.
func (s *Service) Search(ctx context.Context, req request.Request) result.Result {
	start := time.Now()
	idx := s.idx.Load()
	limit := req.Limit()

	var res result.Result
	q := analyze(req.Query())
	if q.normalizedQuery == "" {
		res = s.browse(idx, limit)
	} else {
		res = s.rank(idx, q, limit)
	}

	latency := time.Since(start)
	s.observer.ObserveSearch(res.Mode(), latency, res.TotalMatches(), res.Limited())
	logpkg.FromContextOr(ctx, s.logger).Debug("catalog search",
		zap.String("query", q.normalizedQuery),
		zap.String("mode", string(res.Mode())),
		zap.Int("limit", limit),
		zap.Int("total_matches", res.TotalMatches()),
		zap.Bool("limited", res.Limited()),
		zap.Duration("latency", latency),
	)
	return res
}

// browse returns the whole catalog sorted by name.
func (s *Service) browse(idx *index, limit int) result.Result {
	forms := idx.forms()
	col := collate.New(language.English)
	sort.SliceStable(forms, func(i, j int) bool {
		return col.CompareString(forms[i].Name(), forms[j].Name()) < 0
	})
	total := len(forms)
	if len(forms) > limit {
		forms = forms[:limit]
	}
	return result.New(forms, total, limit, mode.Browse)
}

// rank collects, scores, sorts, gates and truncates candidates.
func (s *Service) rank(idx *index, q *queryInfo, limit int) result.Result {
	t := s.tunables

	set := newCandidateSet()
	pool := max(limit*t.CandidateMultiplier, t.MinCandidatePool)
	s.collect(set, s.strict, idx, q, pool)
	if set.len() < min(t.TopUpFloor, limit*2) {
		s.collect(set, s.broad, idx, q, pool)
	}

	searchMode := mode.Fuzzy
	if set.len() == 0 {
		set = fallbackScan(idx, q, t)
		searchMode = mode.Fallback
	}

	scored := set.order
	for _, c := range scored {
		c.adjustedScore = adjustScore(c.entry, c.baseScore, q, t.Deductions, t.DefaultBaseScore)
	}
	col := collate.New(language.English)
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.adjustedScore != b.adjustedScore {
			return a.adjustedScore < b.adjustedScore
		}
		return col.CompareString(a.entry.name, b.entry.name) < 0
	})

	gate := t.Gate
	if len(q.normalizedQuery) <= t.ShortQueryLength {
		gate = t.ShortQueryGate
	}
	survivors := make([]*candidate, 0, len(scored))
	for _, c := range scored {
		if c.adjustedScore <= gate {
			survivors = append(survivors, c)
		}
	}
	if len(survivors) == 0 {
		survivors = scored[:min(len(scored), limit*2)]
	}

	n := min(len(survivors), limit)
	items := make([]form.Form, n)
	for i := 0; i < n; i++ {
		items[i] = survivors[i].entry.form
	}
	return result.New(items, len(survivors), limit, searchMode)
}

// collect runs m on the normalized query and, when it differs, on the expanded
// token string, merging hits into set.
func (s *Service) collect(set *candidateSet, m matcher, idx *index, q *queryInfo, limit int) {
	passes := []string{q.normalizedQuery}
	if exp := q.expandedString(); exp != "" && exp != q.normalizedQuery {
		passes = append(passes, exp)
	}
	for _, p := range passes {
		for _, hit := range m.search(idx, p, limit) {
			set.add(hit.entry, hit.score)
		}
	}
}
