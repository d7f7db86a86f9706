package domain

type EventType string

const (
	EventSearch  EventType = "search"
	EventCartAdd EventType = "cart_add"
)

// A ClientEvent is one client activity record sent to the analytics topic.
// Username is empty for anonymous searches. Filter carries the normalized
// criteria summary for search events; ProductID is set for cart events.
type ClientEvent struct {
	Username  string
	Event     EventType
	ProductID int
	Filter    string
}
