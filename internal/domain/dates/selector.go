package dates

import (
	"sort"
	"strings"
	"time"
)

// phrase is one candidate notification date. Entries that parse carry their
// timestamp; entries that do not are kept as raw fallback text so the two
// branches stay independently testable.
type phrase struct {
	raw    string
	at     time.Time
	parsed bool
}

// FormatNotificationDates renders a comma-separated list of delivery
// timestamps as the notification-date prose placed into documents:
// the two most recent distinct calendar days, one entry per day (the
// latest time of that day), localized and joined with " y ".
//
// Entries that fail to parse are excluded from day grouping; if nothing
// parses at all, the last up-to-two distinct raw entries are localized
// and returned instead. An empty or blank input yields "".
func FormatNotificationDates(raw string) string {
	var parsed []phrase
	var fallback []string

	for _, seg := range strings.Split(raw, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		at, err := ParseDeliveryTimestamp(seg)
		if err != nil {
			fallback = append(fallback, seg)
			continue
		}
		parsed = append(parsed, phrase{raw: seg, at: at, parsed: true})
	}

	if len(parsed) == 0 {
		return joinPhrases(lastDistinct(fallback, 2))
	}

	// One representative per calendar day: the latest time of day wins,
	// first-seen wins on equal times.
	byDay := make(map[string]phrase)
	var dayOrder []string
	for _, p := range parsed {
		day := p.at.Format("2006-01-02")
		best, ok := byDay[day]
		if !ok {
			byDay[day] = p
			dayOrder = append(dayOrder, day)
			continue
		}
		if p.at.After(best.at) {
			byDay[day] = p
		}
	}

	sort.Strings(dayOrder)
	if len(dayOrder) > 2 {
		dayOrder = dayOrder[len(dayOrder)-2:]
	}

	texts := make([]string, 0, len(dayOrder))
	for _, day := range dayOrder {
		texts = append(texts, byDay[day].raw)
	}
	return joinPhrases(texts)
}

// lastDistinct deduplicates case-insensitively preserving first appearance,
// then keeps the last n entries.
func lastDistinct(entries []string, n int) []string {
	seen := make(map[string]bool, len(entries))
	distinct := make([]string, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e))
		if seen[key] {
			continue
		}
		seen[key] = true
		distinct = append(distinct, e)
	}
	if len(distinct) > n {
		distinct = distinct[len(distinct)-n:]
	}
	return distinct
}

func joinPhrases(raws []string) string {
	localized := make([]string, 0, len(raws))
	for _, r := range raws {
		localized = append(localized, ExpandMonth(r))
	}
	return strings.Join(localized, " y ")
}
