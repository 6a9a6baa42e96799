package types

// SectionBenchmark positions the reviewee's section score among organizational peers.
type SectionBenchmark struct {
	CurrentScore   float64        `json:"current_score"`
	PeerMedian     float64        `json:"peer_median"`
	PeerMean       float64        `json:"peer_mean"`
	PeerMin        float64        `json:"peer_min"`
	PeerMax        float64        `json:"peer_max"`
	Percentile     int            `json:"percentile"`
	PeerCount      int            `json:"peer_count"`
	Distribution   map[string]int `json:"distribution"`
	ShowPercentile bool           `json:"show_percentile"`
}

// PeerBenchmarks holds the per-section benchmarks, keyed by section title,
// and the number of peer cycles they were computed from. A nil value means
// benchmarking is unavailable for the cycle.
type PeerBenchmarks struct {
	PeerCycleCount int                          `json:"peer_cycle_count"`
	Sections       map[string]*SectionBenchmark `json:"sections"`
}
