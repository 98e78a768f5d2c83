package chat

// FirstByAuthor reports whether the message at index i opens a run of
// consecutive messages by the same author: it has no predecessor, or the
// predecessor was written by someone else. Out-of-range indexes are false.
func FirstByAuthor(msgs []Message, i int) bool {
	if i < 0 || i >= len(msgs) {
		return false
	}
	return i == 0 || msgs[i-1].Author != msgs[i].Author
}

// LastByAuthor is the mirror of FirstByAuthor against the following message:
// the message closes its author run when it has no successor or the successor
// belongs to someone else.
func LastByAuthor(msgs []Message, i int) bool {
	if i < 0 || i >= len(msgs) {
		return false
	}
	return i == len(msgs)-1 || msgs[i+1].Author != msgs[i].Author
}
