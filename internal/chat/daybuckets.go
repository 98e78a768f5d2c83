package chat

import (
	"time"

	"github.com/samber/lo"
)

// DayBucket holds the messages of one calendar day, in insertion order.
type DayBucket struct {
	// Day is midnight of the bucket's calendar day in local time.
	Day      time.Time
	Messages []Message
}

// DayBuckets partitions an ordered message sequence by calendar day. The
// history is append-only and chronologically ordered, so partitioning by day
// key yields one bucket per day, oldest first.
func DayBuckets(msgs []Message) []DayBucket {
	parts := lo.PartitionBy(msgs, func(m Message) string {
		return m.Timestamp.Local().Format("2006-01-02")
	})

	buckets := make([]DayBucket, 0, len(parts))
	for _, part := range parts {
		ts := part[0].Timestamp.Local()
		buckets = append(buckets, DayBucket{
			Day:      time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location()),
			Messages: part,
		})
	}
	return buckets
}

// DayLabel renders a divider label for a bucket day relative to now:
// "Today", "Yesterday", then weekday plus date, with the year once it
// differs from the current one.
func DayLabel(day, now time.Time) string {
	switch {
	case sameDay(day, now):
		return "Today"
	case sameDay(day, now.AddDate(0, 0, -1)):
		return "Yesterday"
	case day.Year() == now.Year():
		return day.Format("Mon, Jan 2")
	default:
		return day.Format("Jan 2, 2006")
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
