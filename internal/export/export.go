package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"
)

const resultPrefix = "analysis_result_"

// ResultStore persists analysis reports as timestamped JSON documents
// in a single directory and serves back the most recent one.
type ResultStore struct {
	dir string
}

// NewResultStore creates a result store rooted at dir.
func NewResultStore(dir string) *ResultStore {
	return &ResultStore{dir: dir}
}

// Save writes a report to a new timestamped file and returns its path.
// A report with zero matches is still a valid result and is saved like
// any other; only filesystem failures surface as errors.
func (s *ResultStore) Save(report *models.Report) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}

	name := resultPrefix + time.Now().Format("20060102_150405") + ".json"
	path := filepath.Join(s.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create result file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(report); err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}

	return path, nil
}

// Latest loads the most recent saved report. The second return value
// is the path it was loaded from.
func (s *ResultStore) Latest() (*models.Report, string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read results directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && len(name) > len(resultPrefix) && name[:len(resultPrefix)] == resultPrefix {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil, "", fmt.Errorf("no analysis results found in %s", s.dir)
	}

	// Timestamped names sort lexicographically in time order.
	sort.Strings(names)
	path := filepath.Join(s.dir, names[len(names)-1])

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read result file: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, "", fmt.Errorf("failed to decode result file: %w", err)
	}

	return &report, path, nil
}

// DataExporter provides report export functionality.
type DataExporter struct{}

// NewDataExporter creates a new data exporter.
func NewDataExporter() *DataExporter {
	return &DataExporter{}
}

// ExportToJSON exports a report to a JSON file.
func (e *DataExporter) ExportToJSON(report *models.Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

// ExportToCSV exports report statistics and the frequency table to CSV.
func (e *DataExporter) ExportToCSV(report *models.Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}

	records := [][]string{
		{"Total Attacks", fmt.Sprintf("%d", report.Stats.TotalAttacks)},
		{"SQL Injection", fmt.Sprintf("%d", report.Stats.SQLInjectionCount)},
		{"XSS", fmt.Sprintf("%d", report.Stats.XSSCount)},
		{"DDoS", fmt.Sprintf("%d", report.Stats.DDoSCount)},
		{"Brute Force", fmt.Sprintf("%d", report.Stats.BruteForceCount)},
		{"Unique IPs", fmt.Sprintf("%d", report.Stats.UniqueIPs)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"IP", "Requests"}); err != nil {
		return err
	}

	ips := make([]string, 0, len(report.IPFrequency))
	for ip := range report.IPFrequency {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	for _, ip := range ips {
		if err := writer.Write([]string{ip, fmt.Sprintf("%d", report.IPFrequency[ip])}); err != nil {
			return err
		}
	}

	return nil
}

// WriteReportSummary writes a plain-text report summary.
func WriteReportSummary(report *models.Report, w io.Writer) error {
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n")
	fmt.Fprintf(w, "        SECURITY LOG ANALYSIS REPORT           \n")
	fmt.Fprintf(w, "═══════════════════════════════════════════════\n\n")

	fmt.Fprintf(w, "ATTACK SUMMARY\n")
	fmt.Fprintf(w, "─────────────────────────────────────────────\n")
	fmt.Fprintf(w, "Total Attacks:       %d\n", report.Stats.TotalAttacks)
	fmt.Fprintf(w, "SQL Injection:       %d\n", report.Stats.SQLInjectionCount)
	fmt.Fprintf(w, "XSS:                 %d\n", report.Stats.XSSCount)
	fmt.Fprintf(w, "DDoS:                %d\n", report.Stats.DDoSCount)
	fmt.Fprintf(w, "Brute Force:         %d\n", report.Stats.BruteForceCount)
	fmt.Fprintf(w, "Unique IPs:          %d\n\n", report.Stats.UniqueIPs)

	writeEvents := func(title string, events []models.AttackEvent) {
		if len(events) == 0 {
			return
		}
		fmt.Fprintf(w, "%s\n", title)
		fmt.Fprintf(w, "─────────────────────────────────────────────\n")
		for _, event := range events {
			ip := "-"
			if event.IP != nil {
				ip = *event.IP
			}
			fmt.Fprintf(w, "line %d [%s] %s\n", event.Line, ip, event.Content)
		}
		fmt.Fprintf(w, "\n")
	}

	writeEvents("SQL INJECTION ATTEMPTS", report.SQLInjection)
	writeEvents("XSS ATTEMPTS", report.XSS)
	writeEvents("BRUTE FORCE ATTEMPTS", report.BruteForce)

	if len(report.DDoS) > 0 {
		fmt.Fprintf(w, "HIGH-FREQUENCY SOURCES\n")
		fmt.Fprintf(w, "─────────────────────────────────────────────\n")
		for _, event := range report.DDoS {
			ip := "-"
			if event.IP != nil {
				ip = *event.IP
			}
			fmt.Fprintf(w, "line %d [%s] %d requests\n", event.Line, ip, event.Count)
		}
		fmt.Fprintf(w, "\n")
	}

	return nil
}

// CreateReportSummary writes a plain-text report summary to a file.
func CreateReportSummary(report *models.Report, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteReportSummary(report, file)
}
