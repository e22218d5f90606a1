package analyzer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/Harshhrajj/Logfile-analyzer/internal/config"
	"github.com/Harshhrajj/Logfile-analyzer/internal/parser"
	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"
)

// Analyzer classifies log lines into security event categories and
// accumulates a per-run report. One Analyzer serves exactly one run:
// it is created fresh per input stream, fed lines in order, asked for
// the report once, then discarded. It is not safe for concurrent use;
// concurrent runs each get their own instance.
type Analyzer struct {
	attackPatterns map[string]*regexp.Regexp

	sqlInjectionCount int
	xssCount          int
	ddosCount         int
	bruteForceCount   int

	ipFrequency map[string]int
	ddosFlagged map[string]bool

	sqlInjection []models.AttackEvent
	xss          []models.AttackEvent
	ddos         []models.DDoSEvent
	bruteForce   []models.AttackEvent
}

// New creates an analyzer with the fixed attack pattern set compiled.
func New() *Analyzer {
	a := &Analyzer{
		attackPatterns: make(map[string]*regexp.Regexp),
		ipFrequency:    make(map[string]int),
		ddosFlagged:    make(map[string]bool),
		sqlInjection:   make([]models.AttackEvent, 0),
		xss:            make([]models.AttackEvent, 0),
		ddos:           make([]models.DDoSEvent, 0),
		bruteForce:     make([]models.AttackEvent, 0),
	}

	for name, pattern := range config.AttackPatterns {
		a.attackPatterns[name] = regexp.MustCompile(pattern)
	}

	return a
}

// AnalyzeLine classifies a single line. lineNumber is 1-based and
// supplied by the caller, which guarantees it increases by one per
// line. Any text is acceptable input; a line that matches nothing
// simply leaves the counters alone. A single line may match several
// categories at once.
func (a *Analyzer) AnalyzeLine(line string, lineNumber int) {
	var ip *string
	if addr, ok := parser.ExtractIP(line); ok {
		ip = &addr
		a.ipFrequency[addr]++
	}

	if a.attackPatterns["sql_injection"].MatchString(line) {
		a.sqlInjectionCount++
		a.sqlInjection = append(a.sqlInjection, models.AttackEvent{
			Line:    lineNumber,
			IP:      ip,
			Content: strings.TrimSpace(line),
		})
	}

	if a.attackPatterns["xss"].MatchString(line) {
		a.xssCount++
		a.xss = append(a.xss, models.AttackEvent{
			Line:    lineNumber,
			IP:      ip,
			Content: strings.TrimSpace(line),
		})
	}

	// High-frequency source detection is a latch: it fires on the
	// first line where the address count exceeds the threshold and
	// never again for that address within this run.
	if ip != nil && a.ipFrequency[*ip] > config.DDoSThreshold && !a.ddosFlagged[*ip] {
		a.ddosCount++
		a.ddos = append(a.ddos, models.DDoSEvent{
			Line:  lineNumber,
			IP:    ip,
			Count: a.ipFrequency[*ip],
		})
		a.ddosFlagged[*ip] = true
	}

	if a.attackPatterns["brute_force"].MatchString(line) {
		a.bruteForceCount++
		a.bruteForce = append(a.bruteForce, models.AttackEvent{
			Line:    lineNumber,
			IP:      ip,
			Content: strings.TrimSpace(line),
		})
	}
}

// Report finalizes the run. The total is recomputed as the sum of the
// category counters, the frequency table is copied, and the event
// lists are returned in detection order. Calling Report does not reset
// state; the Analyzer is expected to be discarded afterwards.
func (a *Analyzer) Report() *models.Report {
	freq := make(map[string]int, len(a.ipFrequency))
	for ip, count := range a.ipFrequency {
		freq[ip] = count
	}

	return &models.Report{
		Stats: models.Stats{
			TotalAttacks:      a.sqlInjectionCount + a.xssCount + a.ddosCount + a.bruteForceCount,
			SQLInjectionCount: a.sqlInjectionCount,
			XSSCount:          a.xssCount,
			DDoSCount:         a.ddosCount,
			BruteForceCount:   a.bruteForceCount,
			UniqueIPs:         len(a.ipFrequency),
		},
		IPFrequency:  freq,
		SQLInjection: a.sqlInjection,
		XSS:          a.xss,
		DDoS:         a.ddos,
		BruteForce:   a.bruteForce,
	}
}

// AnalyzeReader drives a full run over an already-opened stream: lines
// are split on newlines, numbered from 1, sanitized, and fed through
// AnalyzeLine. Classification itself never fails; the only error
// surface is the read side.
func (a *Analyzer) AnalyzeReader(r io.Reader) (*models.Report, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		a.AnalyzeLine(parser.Sanitize(scanner.Text()), lineNumber)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading stream: %w", err)
	}

	return a.Report(), nil
}
