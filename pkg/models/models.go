package models

// Report is the immutable result of one analysis run. Field names and
// JSON tags are the stable output contract; saved result files and the
// console surface both consume this shape.
type Report struct {
	Stats        Stats          `json:"stats"`
	IPFrequency  map[string]int `json:"ip_frequency"`
	SQLInjection []AttackEvent  `json:"sql_injection"`
	XSS          []AttackEvent  `json:"xss"`
	DDoS         []DDoSEvent    `json:"ddos"`
	BruteForce   []AttackEvent  `json:"brute_force"`
}

// Stats contains the aggregate counters of a report.
type Stats struct {
	TotalAttacks      int `json:"total_attacks"`
	SQLInjectionCount int `json:"sql_injection_count"`
	XSSCount          int `json:"xss_count"`
	DDoSCount         int `json:"ddos_count"`
	BruteForceCount   int `json:"brute_force_count"`
	UniqueIPs         int `json:"unique_ips"`
}

// AttackEvent records one pattern match on one line. IP is nil when no
// source address was found on the line, and serializes as JSON null.
type AttackEvent struct {
	Line    int     `json:"line"`
	IP      *string `json:"ip"`
	Content string  `json:"content"`
}

// DDoSEvent records the first line on which a source address crossed
// the high-frequency threshold. Count is the running frequency tally
// at the moment of detection.
type DDoSEvent struct {
	Line  int     `json:"line"`
	IP    *string `json:"ip"`
	Count int     `json:"count"`
}

// FrequencySummary describes the distribution of per-address request
// counts across one run.
type FrequencySummary struct {
	UniqueIPs  int       `json:"unique_ips"`
	TotalHits  int       `json:"total_hits"`
	Mean       float64   `json:"mean"`
	Median     float64   `json:"median"`
	P95        float64   `json:"p95"`
	Max        int       `json:"max"`
	TopTalkers []IPCount `json:"top_talkers"`
}

// IPCount is one row of the top-talker leaderboard. Hostname is filled
// only when reverse DNS resolution was requested.
type IPCount struct {
	IP       string `json:"ip"`
	Count    int    `json:"count"`
	Hostname string `json:"hostname,omitempty"`
}
