package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dateFormat = "2006-01-02"
	separator  = "|"
)

// EncodeMultiFieldToken creates an opaque, URL safe token from any number of string fields.
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, separator)))
}

// DecodeMultiFieldToken decodes a token and checks it carries exactly want fields.
func DecodeMultiFieldToken(token string, want int) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decoded), separator)
	if len(parts) != want {
		return nil, fmt.Errorf("invalid pagination token format (expected %d fields, got %d)", want, len(parts))
	}
	return parts, nil
}

// EncodeLineCursor marks the last ledger line returned: (entry date, entry sequence, line number).
func EncodeLineCursor(entryDate time.Time, sequence int64, lineNo int) string {
	return EncodeMultiFieldToken(
		entryDate.Format(dateFormat),
		strconv.FormatInt(sequence, 10),
		strconv.Itoa(lineNo),
	)
}

// DecodeLineCursor parses a token produced by EncodeLineCursor.
func DecodeLineCursor(token string) (time.Time, int64, int, error) {
	parts, err := DecodeMultiFieldToken(token, 3)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	lineNo, err := strconv.Atoi(parts[2])
	if err != nil {
		return time.Time{}, 0, 0, fmt.Errorf("invalid pagination token format (line parse): %w", err)
	}
	return entryDate, sequence, lineNo, nil
}

// EncodeSequenceToken marks the last journal entry returned in a newest-first listing.
func EncodeSequenceToken(sequence int64) string {
	return EncodeMultiFieldToken("seq", strconv.FormatInt(sequence, 10))
}

// DecodeSequenceToken parses a token produced by EncodeSequenceToken.
func DecodeSequenceToken(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token, 2)
	if err != nil {
		return 0, err
	}
	if parts[0] != "seq" {
		return 0, fmt.Errorf("invalid pagination token format (unexpected kind %q)", parts[0])
	}
	sequence, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse): %w", err)
	}
	return sequence, nil
}
