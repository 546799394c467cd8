package question

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// normalizeText canonicalizes text for comparison and hashing: runs of
// whitespace collapse to a single space, leading/trailing whitespace is
// trimmed and the result is lower-cased.
func normalizeText(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// Fingerprint derives the content hash used for duplicate detection.
// It is insensitive to case, whitespace and alternative ordering, and
// sensitive to the source exam and year (the same question reused in a
// different year counts as distinct content). A year of 0 hashes the
// same as an absent year.
func Fingerprint(statement string, alternatives []Alternative, sourceExam string, year int) string {
	alts := make([]string, 0, len(alternatives))
	for _, a := range alternatives {
		alts = append(alts, fmt.Sprintf("%s:%s", a.Letter, a.Text))
	}
	sort.Strings(alts)

	yearPart := ""
	if year != 0 {
		yearPart = fmt.Sprintf("%d", year)
	}
	raw := normalizeText(statement) + "|" + normalizeText(strings.Join(alts, "")) + "|" + normalizeText(sourceExam) + "|" + yearPart
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
