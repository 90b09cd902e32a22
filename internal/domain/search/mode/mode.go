package mode

// Mode is the candidate-collection path a search took.
type Mode string

// Search mode constants.
const (
	// Browse returns the whole catalog sorted by name (empty query).
	Browse Mode = "browse"
	// Fuzzy collects candidates from the strict and broad matchers.
	Fuzzy Mode = "fuzzy"
	// Fallback collects candidates from the linear substring scan.
	Fallback Mode = "fallback"
)

// IsValid checks if the mode is one of the known values.
func (m Mode) IsValid() bool {
	return m == Browse || m == Fuzzy || m == Fallback
}
