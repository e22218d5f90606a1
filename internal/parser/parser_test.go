package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type extractIPTestCase struct {
	line  string
	ip    string
	found bool
	msg   string
}

func TestExtractIP(t *testing.T) {
	testCases := []extractIPTestCase{
		{"192.168.1.1 - GET /", "192.168.1.1", true, "leading address"},
		{"request from 10.0.0.5 done", "10.0.0.5", true, "embedded address"},
		{"10.0.0.1 then 10.0.0.2", "10.0.0.1", true, "first match wins"},
		{"version 1.2.3 only", "", false, "three groups do not match"},
		{"999.999.999.999", "999.999.999.999", true, "groups are not range-validated"},
		{"no address here", "", false, "plain text"},
		{"", "", false, "empty line"},
	}

	for _, testCase := range testCases {
		ip, found := ExtractIP(testCase.line)
		assert.Equal(t, testCase.found, found, testCase.msg)
		assert.Equal(t, testCase.ip, ip, testCase.msg)
	}
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "clean line", Sanitize("clean line"))
	assert.Equal(t, "bad  bytes", Sanitize("bad \xff\xfe bytes"), "invalid UTF-8 dropped")
	assert.Equal(t, "", Sanitize(""))
}
