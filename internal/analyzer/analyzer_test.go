package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type classifyTestCase struct {
	line string
	sql  bool
	xss  bool
	bf   bool
	msg  string
}

func TestClassification(t *testing.T) {
	testCases := []classifyTestCase{
		{"admin' OR 1=1 -- ", true, false, false, "trailing SQL comment"},
		{"GET /?q=UNION  SELECT * HTTP/1.1", true, false, false, "union select"},
		{"SELECT password FROM users", true, false, false, "select from"},
		{"from x select y", false, false, false, "select must come before from"},
		{"DROP TABLE accounts", true, false, false, "drop table"},
		{"-- leading comment only", false, false, false, "comment not at end of line"},
		{"GET /?x=<script>alert(1)</script>", false, true, false, "script tag and alert call"},
		{"onload=stealCookies()", false, true, false, "onload handler"},
		{"click javascript:void(0)", false, true, false, "javascript scheme"},
		{"img onerror=evil()", false, true, false, "onerror handler"},
		{"Failed login for user root", false, false, true, "failed login"},
		{"pam_unix: authentication failure; rhost=10.0.0.8", false, false, true, "authentication failure"},
		{"Invalid Password entered", false, false, true, "invalid password case-insensitive"},
		{"plain request line, nothing interesting", false, false, false, "benign line"},
		{"", false, false, false, "empty line"},
	}

	for _, testCase := range testCases {
		a := New()
		a.AnalyzeLine(testCase.line, 1)
		report := a.Report()

		assert.Equal(t, boolToCount(testCase.sql), report.Stats.SQLInjectionCount, testCase.msg)
		assert.Equal(t, boolToCount(testCase.xss), report.Stats.XSSCount, testCase.msg)
		assert.Equal(t, boolToCount(testCase.bf), report.Stats.BruteForceCount, testCase.msg)
	}
}

func boolToCount(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestSQLInjectionEventShape(t *testing.T) {
	a := New()
	a.AnalyzeLine("admin' OR 1=1 -- ", 1)
	report := a.Report()

	require.Len(t, report.SQLInjection, 1)
	event := report.SQLInjection[0]
	assert.Equal(t, 1, event.Line)
	assert.Nil(t, event.IP, "no address on the line")
	assert.Equal(t, "admin' OR 1=1 --", event.Content, "content is the trimmed line")
}

func TestXSSWithAddress(t *testing.T) {
	a := New()
	a.AnalyzeLine("GET /?x=<script>alert(1)</script> from 10.0.0.5", 3)
	report := a.Report()

	require.Len(t, report.XSS, 1)
	require.NotNil(t, report.XSS[0].IP)
	assert.Equal(t, "10.0.0.5", *report.XSS[0].IP)
	assert.Equal(t, 3, report.XSS[0].Line)
	assert.Equal(t, 1, report.Stats.XSSCount)
	assert.Equal(t, 1, report.IPFrequency["10.0.0.5"])
}

func TestAddressCountedWithoutAttackMatch(t *testing.T) {
	a := New()
	a.AnalyzeLine("192.168.1.1 GET /index.html 200", 1)
	a.AnalyzeLine("192.168.1.1 GET /about.html 200", 2)
	report := a.Report()

	assert.Equal(t, 2, report.IPFrequency["192.168.1.1"])
	assert.Equal(t, 1, report.Stats.UniqueIPs)
	assert.Equal(t, 0, report.Stats.TotalAttacks)
}

func TestFirstAddressWins(t *testing.T) {
	a := New()
	a.AnalyzeLine("10.0.0.1 forwarded for 10.0.0.2", 1)
	report := a.Report()

	assert.Equal(t, 1, report.IPFrequency["10.0.0.1"])
	assert.NotContains(t, report.IPFrequency, "10.0.0.2", "only the first match per line is taken")
}

func TestDDoSLatch(t *testing.T) {
	a := New()
	for i := 1; i <= 101; i++ {
		a.AnalyzeLine("203.0.113.9 GET / 200", i)
	}
	report := a.Report()

	assert.Equal(t, 101, report.IPFrequency["203.0.113.9"])
	assert.Equal(t, 1, report.Stats.DDoSCount)
	require.Len(t, report.DDoS, 1)
	assert.Equal(t, 101, report.DDoS[0].Line, "fires on the 101st occurrence")
	assert.Equal(t, 101, report.DDoS[0].Count)
	require.NotNil(t, report.DDoS[0].IP)
	assert.Equal(t, "203.0.113.9", *report.DDoS[0].IP)
}

func TestDDoSLatchFiresOnce(t *testing.T) {
	a := New()
	for i := 1; i <= 250; i++ {
		a.AnalyzeLine("203.0.113.9 GET / 200", i)
	}
	report := a.Report()

	assert.Equal(t, 1, report.Stats.DDoSCount, "latched after the first crossing")
	assert.Len(t, report.DDoS, 1)
	assert.Equal(t, 250, report.IPFrequency["203.0.113.9"], "frequency keeps counting past the latch")
}

func TestDDoSThresholdIsStrictlyGreater(t *testing.T) {
	a := New()
	for i := 1; i <= 100; i++ {
		a.AnalyzeLine("198.51.100.7 GET / 200", i)
	}
	report := a.Report()

	assert.Equal(t, 0, report.Stats.DDoSCount, "exactly 100 occurrences must not trigger")
}

func TestDDoSOrderFollowsFirstCrossing(t *testing.T) {
	a := New()
	line := 0
	// second crosses the threshold before first
	for i := 0; i < 99; i++ {
		line++
		a.AnalyzeLine("10.0.0.1 hit", line)
		line++
		a.AnalyzeLine("10.0.0.2 hit", line)
	}
	for i := 0; i < 5; i++ {
		line++
		a.AnalyzeLine("10.0.0.2 hit", line)
	}
	for i := 0; i < 5; i++ {
		line++
		a.AnalyzeLine("10.0.0.1 hit", line)
	}
	report := a.Report()

	require.Len(t, report.DDoS, 2)
	assert.Equal(t, "10.0.0.2", *report.DDoS[0].IP)
	assert.Equal(t, "10.0.0.1", *report.DDoS[1].IP)
}

func TestMultipleCategoriesOnOneLine(t *testing.T) {
	a := New()
	a.AnalyzeLine("failed login via javascript:payload", 7)
	report := a.Report()

	assert.Equal(t, 1, report.Stats.BruteForceCount)
	assert.Equal(t, 1, report.Stats.XSSCount)
	require.Len(t, report.BruteForce, 1)
	require.Len(t, report.XSS, 1)
	assert.Equal(t, 7, report.BruteForce[0].Line)
	assert.Equal(t, 7, report.XSS[0].Line)
}

func TestTotalAttacksIsSumOfCategories(t *testing.T) {
	a := New()
	lines := []string{
		"union select * from users",
		"<script>alert(document.cookie)</script>",
		"failed login from 10.1.1.1",
		"Invalid password for admin from 10.1.1.1",
		"10.2.2.2 GET / 200",
	}
	for i, line := range lines {
		a.AnalyzeLine(line, i+1)
	}
	report := a.Report()

	recomputed := len(report.SQLInjection) + len(report.XSS) + len(report.DDoS) + len(report.BruteForce)
	assert.Equal(t, recomputed, report.Stats.TotalAttacks)
	assert.Equal(t, report.Stats.SQLInjectionCount, len(report.SQLInjection))
	assert.Equal(t, report.Stats.XSSCount, len(report.XSS))
	assert.Equal(t, report.Stats.DDoSCount, len(report.DDoS))
	assert.Equal(t, report.Stats.BruteForceCount, len(report.BruteForce))
	assert.Equal(t, len(report.IPFrequency), report.Stats.UniqueIPs)
}

func TestEmptyStream(t *testing.T) {
	a := New()
	report, err := a.AnalyzeReader(strings.NewReader(""))
	require.NoError(t, err)

	assert.Equal(t, 0, report.Stats.TotalAttacks)
	assert.Equal(t, 0, report.Stats.UniqueIPs)
	assert.Empty(t, report.IPFrequency)
	assert.Empty(t, report.SQLInjection)
	assert.Empty(t, report.XSS)
	assert.Empty(t, report.DDoS)
	assert.Empty(t, report.BruteForce)
}

func TestDeterminism(t *testing.T) {
	stream := func() string {
		var b strings.Builder
		for i := 0; i < 120; i++ {
			fmt.Fprintf(&b, "10.9.8.7 GET /?id=%d union select -- \n", i)
		}
		b.WriteString("failed login for root from 172.16.0.1\n")
		b.WriteString("<script>alert(1)</script>\n")
		return b.String()
	}

	first, err := New().AnalyzeReader(strings.NewReader(stream()))
	require.NoError(t, err)
	second, err := New().AnalyzeReader(strings.NewReader(stream()))
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestReportDoesNotResetState(t *testing.T) {
	a := New()
	a.AnalyzeLine("drop table users", 1)
	first := a.Report()
	second := a.Report()

	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.SQLInjection, second.SQLInjection)
}

func TestReaderNumbersLinesFromOne(t *testing.T) {
	a := New()
	report, err := a.AnalyzeReader(strings.NewReader("benign\nfailed login\n"))
	require.NoError(t, err)

	require.Len(t, report.BruteForce, 1)
	assert.Equal(t, 2, report.BruteForce[0].Line)
}

func TestReaderDropsInvalidUTF8(t *testing.T) {
	a := New()
	report, err := a.AnalyzeReader(strings.NewReader("failed login \xff\xfe from console\n"))
	require.NoError(t, err)

	require.Len(t, report.BruteForce, 1)
	assert.Equal(t, "failed login  from console", report.BruteForce[0].Content)
}

func TestReportSerializationContract(t *testing.T) {
	a := New()
	a.AnalyzeLine("admin' OR 1=1 -- ", 1)
	report := a.Report()

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, key := range []string{"stats", "ip_frequency", "sql_injection", "xss", "ddos", "brute_force"} {
		assert.Contains(t, decoded, key)
	}

	stats := decoded["stats"].(map[string]interface{})
	for _, key := range []string{"total_attacks", "sql_injection_count", "xss_count", "ddos_count", "brute_force_count", "unique_ips"} {
		assert.Contains(t, stats, key)
	}

	events := decoded["sql_injection"].([]interface{})
	require.Len(t, events, 1)
	event := events[0].(map[string]interface{})
	assert.Nil(t, event["ip"], "missing address serializes as null")

	// empty categories serialize as [], not null
	assert.NotNil(t, decoded["xss"])
	assert.IsType(t, []interface{}{}, decoded["xss"])
}
