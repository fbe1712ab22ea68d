package dto

import "time"

type MessageOutput struct {
	ID        string
	Text      string
	Sender    string
	CreatedAt time.Time
}

// ExchangeOutput is one full round trip: the user's message, the assistant's
// reply, and whether the reply confirmed a server-side task mutation.
type ExchangeOutput struct {
	User         MessageOutput
	Assistant    MessageOutput
	MutatedTasks bool
}
