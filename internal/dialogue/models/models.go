package models

import (
	"errors"
	"time"
)

// ErrStepRequired rejects an update without a step name.
var ErrStepRequired = errors.New("step is required")

// State is the dialogue state the HTTP and CLI surfaces store per chat: the
// step a conversation has reached plus the answers collected so far.
type State struct {
	Step      string            `json:"step" yaml:"step"`
	Data      map[string]string `json:"data,omitempty" yaml:"data,omitempty"`
	UpdatedAt time.Time         `json:"updated_at" yaml:"updated_at"`
}

// UpdateStateRequest is the body of PUT /dialogues/{chatID}.
type UpdateStateRequest struct {
	Step string            `json:"step"`
	Data map[string]string `json:"data,omitempty"`
}

func (r UpdateStateRequest) Validate() error {
	if r.Step == "" {
		return ErrStepRequired
	}
	return nil
}

// ToState stamps the request with the time it was accepted.
func (r UpdateStateRequest) ToState(now time.Time) State {
	return State{Step: r.Step, Data: r.Data, UpdatedAt: now}
}
