package health

// Response represents the health check response
type Response struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version,omitempty"`
	Provider string `json:"provider"`
	Sessions int    `json:"sessions"`
}

// PingResponse represents the ping response
type PingResponse struct {
	Message string `json:"message"`
}

// reports how many wizard sessions are live
type SessionCounter interface {
	GetSessionCount() int
}
