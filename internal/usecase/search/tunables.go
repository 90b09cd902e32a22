package search

// FieldWeights holds the relative weight of each indexed field in the fuzzy matchers.
// Weights are normalized to sum to 1 when a matcher is built.
type FieldWeights struct {
	Code            float64
	Name            float64
	Keywords        float64
	Description     float64
	LongDescription float64
}

// Deductions holds the score reductions applied by the scorer. Lower score = better.
type Deductions struct {
	ExactCode     float64
	CodePrefix    float64
	CodeSubstring float64
	ExactName     float64
	NamePrefix    float64
	NameSubstring float64
	TokenHit      float64
	TokenHitCap   float64
	SynonymHit    float64
	SynonymHitCap float64
	FullCoverage  float64
}

// Tunables are the empirically chosen constants of the ranking pipeline.
type Tunables struct {
	// StrictThreshold and BroadThreshold bound the per-field score a matcher accepts.
	StrictThreshold float64
	BroadThreshold  float64
	// CoveragePenalty is added to a field score in proportion to uncovered query tokens.
	CoveragePenalty float64
	Weights         FieldWeights

	// Candidate pool size: max(limit*CandidateMultiplier, MinCandidatePool).
	CandidateMultiplier int
	MinCandidatePool    int
	// The broad matcher runs when fewer than min(TopUpFloor, limit*2) candidates were found.
	TopUpFloor int

	// Queries of at most ShortQueryLength normalized chars are gated at ShortQueryGate.
	ShortQueryLength int
	ShortQueryGate   float64
	Gate             float64

	DefaultBaseScore  float64
	FallbackBaseScore float64
	FallbackStep      float64

	Deductions Deductions
}

// DefaultTunables returns the calibrated defaults.
func DefaultTunables() Tunables {
	return Tunables{
		StrictThreshold: 0.34,
		BroadThreshold:  0.6,
		CoveragePenalty: 0.3,
		Weights: FieldWeights{
			Code:            3.0,
			Name:            2.5,
			Keywords:        1.8,
			Description:     1.2,
			LongDescription: 0.6,
		},
		CandidateMultiplier: 6,
		MinCandidatePool:    40,
		TopUpFloor:          12,
		ShortQueryLength:    3,
		ShortQueryGate:      0.48,
		Gate:                0.67,
		DefaultBaseScore:    0.62,
		FallbackBaseScore:   0.55,
		FallbackStep:        0.0001,
		Deductions: Deductions{
			ExactCode:     0.5,
			CodePrefix:    0.2,
			CodeSubstring: 0.1,
			ExactName:     0.3,
			NamePrefix:    0.18,
			NameSubstring: 0.1,
			TokenHit:      0.08,
			TokenHitCap:   0.28,
			SynonymHit:    0.015,
			SynonymHitCap: 0.09,
			FullCoverage:  0.06,
		},
	}
}
