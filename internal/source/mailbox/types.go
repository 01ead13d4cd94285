package mailbox

import "time"

// Envelope holds the parsed envelope data from an IMAP message.
type Envelope struct {
	MessageID string
	Subject   string
	From      string
	Date      time.Time
	Flags     []string // \Seen, \Flagged, \Answered
	UID       uint32
}

// ParsedMessage holds the full parsed content of a message, used for
// the request preview.
type ParsedMessage struct {
	Envelope Envelope
	TextBody string
	HTMLBody string
}
