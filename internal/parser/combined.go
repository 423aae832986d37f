package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"logsentry/internal/types"
)

// Combined Log Format (Nginx/Apache default):
// 1.2.3.4 - user [01/Jan/2026:12:00:00 +0000] "GET /path HTTP/1.1" 200 123 "-" "UserAgent"
// Groups: 1=addr, 2=user, 3=time_local, 4=request, 5=status, 6=size, 7=referer, 8=user_agent.
// The ident field between addr and user is ignored.
var combinedRE = regexp.MustCompile(
	`^(\S+) \S+ (\S+) \[([^\]]+)\] "([^"]*)" (\d{3}) (\S+) "([^"]*)" "([^"]*)"`)

// timeLocalLayout is the bracketed timestamp layout of the combined format.
const timeLocalLayout = "02/Jan/2006:15:04:05 -0700"

// isoLayout always emits a numeric UTC offset so the original offset of the
// source line survives normalization (RFC 3339 would collapse +0000 to "Z").
const isoLayout = "2006-01-02T15:04:05-07:00"

// Normalize parses one raw combined-format line into a LogRecord.
//
// A blank or whitespace-only line is not an error: it returns (nil, nil) and
// the caller simply skips it. Any other line that does not match the grammar
// returns a *MalformedLineError carrying the offending text. The "-"
// placeholder for user, size, referer, and user agent maps to a nil field,
// never to the literal dash.
func Normalize(line string) (*types.LogRecord, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	m := combinedRE.FindStringSubmatch(line)
	if m == nil {
		return nil, &MalformedLineError{Line: line}
	}

	ts, err := time.Parse(timeLocalLayout, m[3])
	if err != nil {
		return nil, &MalformedLineError{Line: line}
	}

	status, err := strconv.Atoi(m[5])
	if err != nil {
		return nil, &MalformedLineError{Line: line}
	}

	rec := &types.LogRecord{
		RemoteAddr: m[1],
		RemoteUser: optional(m[2]),
		TimeLocal:  m[3],
		Timestamp:  ts.Format(isoLayout),
		Request:    m[4],
		Status:     status,
		Referer:    optional(m[7]),
		UserAgent:  optional(m[8]),
	}

	if m[6] != "-" {
		size, err := strconv.Atoi(m[6])
		if err != nil {
			return nil, &MalformedLineError{Line: line}
		}
		rec.BodyBytesSent = &size
	}

	return rec, nil
}

// CombinedLine re-serializes a record into combined log form. Absent optional
// fields come back as the "-" placeholder, so a normalized record reproduces
// its source line field for field.
func CombinedLine(rec *types.LogRecord) string {
	var b strings.Builder
	b.WriteString(rec.RemoteAddr)
	b.WriteString(" - ")
	b.WriteString(placeholder(rec.RemoteUser))
	b.WriteString(" [")
	b.WriteString(rec.TimeLocal)
	b.WriteString(`] "`)
	b.WriteString(rec.Request)
	b.WriteString(`" `)
	b.WriteString(strconv.Itoa(rec.Status))
	b.WriteByte(' ')
	if rec.BodyBytesSent != nil {
		b.WriteString(strconv.Itoa(*rec.BodyBytesSent))
	} else {
		b.WriteByte('-')
	}
	b.WriteString(` "`)
	b.WriteString(placeholder(rec.Referer))
	b.WriteString(`" "`)
	b.WriteString(placeholder(rec.UserAgent))
	b.WriteByte('"')
	return b.String()
}

func optional(field string) *string {
	if field == "-" {
		return nil
	}
	return &field
}

func placeholder(field *string) string {
	if field == nil {
		return "-"
	}
	return *field
}
