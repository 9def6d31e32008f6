package live

// Message types.
const (
	TypeEvent  = "event"
	TypeCall   = "call"
	TypeAttr   = "attr"
	TypeHTML   = "html"
	TypeResult = "result"
	TypeError  = "error"
)

// Message is the single envelope used in both directions.
type Message struct {
	Type   string `json:"type"`
	Event  string `json:"event,omitempty"`
	Method string `json:"method,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	Remove bool   `json:"remove,omitempty"`
	Detail any    `json:"detail,omitempty"`
	Result any    `json:"result,omitempty"`
	HTML   string `json:"html,omitempty"`
	Error  string `json:"error,omitempty"`
}

func errorMessage(text string) Message {
	return Message{Type: TypeError, Error: text}
}
