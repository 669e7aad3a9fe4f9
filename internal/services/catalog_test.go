package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		port     int
		expected string
	}{
		{21, "FTP"},
		{22, "SSH"},
		{23, "Telnet"},
		{25, "SMTP"},
		{53, "DNS"},
		{80, "HTTP"},
		{110, "POP3"},
		{143, "IMAP"},
		{443, "HTTPS"},
		{993, "IMAPS"},
		{995, "POP3S"},
		{1433, "MSSQL"},
		{3306, "MySQL"},
		{3389, "RDP"},
		{5432, "PostgreSQL"},
		{6379, "Redis"},
		{8080, "HTTP-Alt"},
		{27017, "MongoDB"},
		{1, Unknown},
		{8443, Unknown},
		{65535, Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Lookup(tt.port), "port %d", tt.port)
	}
}

func TestAll(t *testing.T) {
	entries := All()

	assert.Len(t, entries, 18)
	assert.Equal(t, Entry{Port: 21, Service: "FTP"}, entries[0])
	assert.Equal(t, Entry{Port: 27017, Service: "MongoDB"}, entries[len(entries)-1])
	for i := 1; i < len(entries); i++ {
		assert.Less(t, entries[i-1].Port, entries[i].Port)
	}
}
