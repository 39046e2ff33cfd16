package timex

import (
	"fmt"
	"math"
	"time"
)

// now is a seam for tests.
var now = time.Now

// FormatRelativeTime describes a unix timestamp relative to the current time.
func FormatRelativeTime(ts int64) string {
	return FormatRelative(ts, now())
}

// FormatRelative describes ts relative to ref:
//
//	< 1 minute   "less than a minute ago"
//	< 2 minutes  "about a minute ago"
//	< 1 hour     "N minutes ago"
//	< 2 hours    "about an hour ago"
//	< 1 day      "about N hours ago"
//	< 2 days     "1 day ago"
//
// Older timestamps are printed as a date ("2 January 2006") in ref's
// location. A zero timestamp means the event never happened. Timestamps in
// the future fall in the first bucket.
func FormatRelative(ts int64, ref time.Time) string {
	if ts == 0 {
		return "Never"
	}

	diff := ref.Unix() - ts
	switch {
	case diff < 60:
		return "less than a minute ago"
	case diff < 120:
		return "about a minute ago"
	case diff < 60*60:
		return fmt.Sprintf("%d minutes ago", roundDiv(diff, 60))
	case diff < 120*60:
		return "about an hour ago"
	case diff < 24*60*60:
		return fmt.Sprintf("about %d hours ago", roundDiv(diff, 3600))
	case diff < 48*60*60:
		return "1 day ago"
	default:
		return time.Unix(ts, 0).In(ref.Location()).Format("2 January 2006")
	}
}

func roundDiv(n, d int64) int64 {
	return int64(math.Round(float64(n) / float64(d)))
}
