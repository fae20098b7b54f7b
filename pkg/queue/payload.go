package queue

import "encoding/json"

// Payload is the JSON envelope stored for every job
type Payload struct {
	UUID        string          `json:"uuid"`
	DisplayName string          `json:"displayName"`
	MaxTries    *int            `json:"maxTries"`
	Timeout     *int            `json:"timeout"` // seconds
	Data        json.RawMessage `json:"data"`
	Attempts    int             `json:"attempts"`
}
