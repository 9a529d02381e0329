// Package delivery turns a CPanel mail-delivery log into the per-recipient
// timestamp index used when generating notification documents.
package delivery

import (
	"sort"
	"strings"
	"time"

	"razones/internal/domain/dates"
	"razones/internal/shared/errors"
)

// Record is one row of the delivery log.
type Record struct {
	Sender    string
	Recipient string
	// SentAt is the raw timestamp text as exported by CPanel, with
	// Spanish month abbreviations ("11 feb 2026 10:30:45").
	SentAt string
}

// Index maps a recipient address to its raw delivery timestamps, in log
// order. Keys are case-sensitive as they appear in the log.
type Index map[string][]string

// Normalized returns a copy of the index keyed by lowercased, trimmed
// recipient addresses for case-insensitive lookup.
func (idx Index) Normalized() Index {
	norm := make(Index, len(idx))
	for k, v := range idx {
		norm[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return norm
}

// BuildIndex filters the delivery log down to notifications actually sent by
// sender on the two most recent calendar days present, excluding
// self-addressed rows, and groups the raw timestamps by recipient.
//
// Any timestamp that fails to parse rejects the whole log: a malformed
// export is an operator error, not a row to skip.
func BuildIndex(records []Record, sender string) (Index, error) {
	parsed := make([]time.Time, len(records))
	for i, r := range records {
		at, err := dates.ParseDeliveryTimestamp(r.SentAt)
		if err != nil {
			return nil, errors.NewParseError("invalid delivery timestamp in log", r.SentAt)
		}
		parsed[i] = at
	}

	type entry struct {
		rec Record
		day string
	}
	var matched []entry
	daySeen := make(map[string]bool)
	var days []string
	for i, r := range records {
		if r.Sender != sender {
			continue
		}
		day := parsed[i].Format("2006-01-02")
		matched = append(matched, entry{rec: r, day: day})
		if !daySeen[day] {
			daySeen[day] = true
			days = append(days, day)
		}
	}
	if len(matched) == 0 {
		return Index{}, nil
	}

	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	if len(days) > 2 {
		days = days[:2]
	}
	keep := make(map[string]bool, len(days))
	for _, d := range days {
		keep[d] = true
	}

	idx := Index{}
	for _, e := range matched {
		if !keep[e.day] || e.rec.Recipient == sender {
			continue
		}
		idx[e.rec.Recipient] = append(idx[e.rec.Recipient], e.rec.SentAt)
	}
	return idx, nil
}
