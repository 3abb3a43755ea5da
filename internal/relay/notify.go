package relay

import "context"

// Envelope is the mail message published to the send-mail topic.
type Envelope struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// Notifier enqueues a mail envelope, best-effort. Enqueue never blocks
// the caller on delivery and never surfaces a failure; a lost message
// is accepted by contract.
type Notifier interface {
	Enqueue(ctx context.Context, msg Envelope)
}
