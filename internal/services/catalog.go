// Package services maps well-known port numbers to service names.
package services

import "sort"

// Unknown is reported for ports missing from the catalog.
const Unknown = "Unknown"

var catalog = map[int]string{
	21:    "FTP",
	22:    "SSH",
	23:    "Telnet",
	25:    "SMTP",
	53:    "DNS",
	80:    "HTTP",
	110:   "POP3",
	143:   "IMAP",
	443:   "HTTPS",
	993:   "IMAPS",
	995:   "POP3S",
	1433:  "MSSQL",
	3306:  "MySQL",
	3389:  "RDP",
	5432:  "PostgreSQL",
	6379:  "Redis",
	8080:  "HTTP-Alt",
	27017: "MongoDB",
}

// Entry is one row of the catalog.
type Entry struct {
	Port    int    `json:"port"`
	Service string `json:"service"`
}

// Lookup returns the service name registered for port, or Unknown.
func Lookup(port int) string {
	if name, ok := catalog[port]; ok {
		return name
	}
	return Unknown
}

// All returns every catalog entry ordered by port.
func All() []Entry {
	entries := make([]Entry, 0, len(catalog))
	for port, name := range catalog {
		entries = append(entries, Entry{Port: port, Service: name})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Port < entries[j].Port
	})
	return entries
}
