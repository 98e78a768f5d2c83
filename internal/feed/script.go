package feed

import "time"

// Entry is one scripted line of channel traffic.
type Entry struct {
	// Author is the peer the line is attributed to
	Author string
	// Content is the message body
	Content string
	// Image optionally names an attachment shown with the message
	Image string
	// After pins the pause before this entry; zero means a randomized delay
	After time.Duration
}

// DefaultScript is the built-in channel chatter played by the feed. Authors
// repeat back-to-back on purpose so message grouping stays visible.
func DefaultScript() []Entry {
	return []Entry{
		{Author: "taylor", Content: "morning all, the scroll branch is up for review", After: 3 * time.Second},
		{Author: "taylor", Content: "mostly edge cases around resize, should be quick"},
		{Author: "john", Content: "on it right after standup"},
		{Author: "sara", Content: "sketched a cleaner look for the day dividers", Image: "divider-mock.png"},
		{Author: "sara", Content: "thinner rule, label centered"},
		{Author: "john", Content: "that reads much better at narrow widths"},
		{Author: "taylor", Content: "agreed, fold it into the branch"},
		{Author: "john", Content: "anyone else seeing the member count flicker on reconnect?"},
		{Author: "sara", Content: "only when the bar truncates, filed it yesterday"},
		{Author: "taylor", Content: "grabbing lunch, back in a bit"},
	}
}
