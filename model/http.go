package model

type NoteEventRequest struct {
	Pitch    int `json:"pitch"`
	Velocity int `json:"velocity"`
}

// ConfigRequest carries config values as text so the transport can reject
// garbage itself and keep the prior setting.
type ConfigRequest struct {
	Value string `json:"value"`
}

// EventResponse returns the protocol lines an event produced, in emission
// order (thru control first, done last).
type EventResponse struct {
	Messages []string `json:"messages"`
}

type StateResponse struct {
	Session string `json:"session"`
	Snapshot
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
