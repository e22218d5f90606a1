package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/Harshhrajj/Logfile-analyzer/pkg/models"
)

// ConsoleUI renders analysis reports on the terminal.
type ConsoleUI struct {
	writer io.Writer
	colors bool
}

// NewConsoleUI creates a new console UI.
func NewConsoleUI(enableColors bool) *ConsoleUI {
	return &ConsoleUI{
		writer: os.Stdout,
		colors: enableColors,
	}
}

// DisplayReport displays a full analysis report: attack summary, the
// per-category event tables, and the source address leaderboard.
// reverseDNS may be nil when hostname resolution was not requested.
func (u *ConsoleUI) DisplayReport(report *models.Report, summary *models.FrequencySummary, reverseDNS map[string]string) {
	u.printHeader("🔒 SECURITY LOG ANALYSIS REPORT")

	u.printSection("Attack Summary")
	u.printKeyValue("Total Attacks", fmt.Sprintf("%d", report.Stats.TotalAttacks))
	u.printKeyValue("SQL Injection", fmt.Sprintf("%d", report.Stats.SQLInjectionCount))
	u.printKeyValue("XSS", fmt.Sprintf("%d", report.Stats.XSSCount))
	u.printKeyValue("DDoS", fmt.Sprintf("%d", report.Stats.DDoSCount))
	u.printKeyValue("Brute Force", fmt.Sprintf("%d", report.Stats.BruteForceCount))
	u.printKeyValue("Unique IPs", fmt.Sprintf("%d", report.Stats.UniqueIPs))

	if len(report.SQLInjection) > 0 {
		u.printSection("SQL Injection Attempts")
		u.printEventsTable(report.SQLInjection)
	}
	if len(report.XSS) > 0 {
		u.printSection("XSS Attempts")
		u.printEventsTable(report.XSS)
	}
	if len(report.BruteForce) > 0 {
		u.printSection("Brute Force Attempts")
		u.printEventsTable(report.BruteForce)
	}
	if len(report.DDoS) > 0 {
		u.printSection("High-Frequency Sources")
		u.printDDoSTable(report.DDoS)
	}

	if summary != nil && summary.UniqueIPs > 0 {
		u.printSection("Source Address Frequency")
		u.printKeyValue("Requests With IP", fmt.Sprintf("%d", summary.TotalHits))
		u.printKeyValue("Mean Per IP", fmt.Sprintf("%.1f", summary.Mean))
		u.printKeyValue("Median Per IP", fmt.Sprintf("%.1f", summary.Median))
		u.printKeyValue("P95 Per IP", fmt.Sprintf("%.1f", summary.P95))
		u.printKeyValue("Max Per IP", fmt.Sprintf("%d", summary.Max))

		if len(summary.TopTalkers) > 0 {
			u.printSection("Top Source Addresses")
			u.printTopTalkersTable(summary.TopTalkers, reverseDNS)
		}
	}
}

// Print helper methods
func (u *ConsoleUI) printHeader(title string) {
	if u.colors {
		color.New(color.FgCyan, color.Bold).Fprintf(u.writer, "\n%s\n", title)
		color.New(color.FgCyan).Fprintf(u.writer, "%s\n\n", strings.Repeat("═", len([]rune(title))))
	} else {
		fmt.Fprintf(u.writer, "\n%s\n%s\n\n", title, strings.Repeat("=", len([]rune(title))))
	}
}

func (u *ConsoleUI) printSection(title string) {
	if u.colors {
		color.New(color.FgYellow, color.Bold).Fprintf(u.writer, "\n%s\n", title)
		color.New(color.FgYellow).Fprintf(u.writer, "%s\n", strings.Repeat("─", len([]rune(title))))
	} else {
		fmt.Fprintf(u.writer, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
	}
}

func (u *ConsoleUI) printKeyValue(key, value string) {
	if u.colors {
		color.New(color.FgWhite, color.Bold).Fprintf(u.writer, "%-25s", key+":")
		color.New(color.FgGreen).Fprintf(u.writer, "%s\n", value)
	} else {
		fmt.Fprintf(u.writer, "%-25s %s\n", key+":", value)
	}
}

func (u *ConsoleUI) printEventsTable(events []models.AttackEvent) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Line", "IP", "Content"})

	for _, event := range events[:min(10, len(events))] {
		ip := "-"
		if event.IP != nil {
			ip = *event.IP
		}
		table.Append([]string{
			fmt.Sprintf("%d", event.Line),
			ip,
			truncate(event.Content, 60),
		})
	}

	table.Render()
	if len(events) > 10 {
		fmt.Fprintf(u.writer, "... and %d more\n", len(events)-10)
	}
}

func (u *ConsoleUI) printDDoSTable(events []models.DDoSEvent) {
	table := tablewriter.NewWriter(u.writer)
	table.SetHeader([]string{"Line", "IP", "Requests"})

	for _, event := range events {
		ip := "-"
		if event.IP != nil {
			ip = *event.IP
		}
		table.Append([]string{
			fmt.Sprintf("%d", event.Line),
			ip,
			fmt.Sprintf("%d", event.Count),
		})
	}

	table.Render()
}

func (u *ConsoleUI) printTopTalkersTable(talkers []models.IPCount, reverseDNS map[string]string) {
	withHostnames := len(reverseDNS) > 0

	table := tablewriter.NewWriter(u.writer)
	if withHostnames {
		table.SetHeader([]string{"IP", "Requests", "Hostname"})
	} else {
		table.SetHeader([]string{"IP", "Requests"})
	}

	for _, talker := range talkers {
		if withHostnames {
			hostname := talker.Hostname
			if hostname == "" {
				hostname = reverseDNS[talker.IP]
			}
			table.Append([]string{talker.IP, fmt.Sprintf("%d", talker.Count), truncate(hostname, 40)})
		} else {
			table.Append([]string{talker.IP, fmt.Sprintf("%d", talker.Count)})
		}
	}

	table.Render()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
