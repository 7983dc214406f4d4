// Package action defines the immutable records that describe state
// transitions, and a registry that decodes them from YAML or JSON scripts.
package action

import (
	"errors"
	"fmt"
)

// Type tags an action with the transition it requests.
type Type string

const (
	TypeOpenThread    Type = "OPEN_THREAD"
	TypeAddMessage    Type = "ADD_MESSAGE"
	TypeDeleteMessage Type = "DELETE_MESSAGE"
)

// Sentinel errors for action construction and decoding.
var (
	ErrMalformedAction   = errors.New("malformed action")
	ErrEmptyType         = errors.New("action type is empty")
	ErrAlreadyRegistered = errors.New("action type already registered")
)

// Action is a single requested transition. Validate reports missing required
// fields; the reducer assumes it only receives actions that passed Validate.
type Action interface {
	Type() Type
	Validate() error
}

// OpenThread selects the thread with the given id as active.
type OpenThread struct {
	ID string `json:"id" yaml:"id"`
}

func (OpenThread) Type() Type { return TypeOpenThread }

func (a OpenThread) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: %s requires id", ErrMalformedAction, TypeOpenThread)
	}
	return nil
}

// AddMessage appends a message with the given text to a thread. The message
// id and timestamp are assigned by the reducer's injected services.
type AddMessage struct {
	ThreadID string `json:"thread_id" yaml:"thread_id"`
	Text     string `json:"text" yaml:"text"`
}

func (AddMessage) Type() Type { return TypeAddMessage }

func (a AddMessage) Validate() error {
	if a.ThreadID == "" {
		return fmt.Errorf("%w: %s requires thread_id", ErrMalformedAction, TypeAddMessage)
	}
	return nil
}

// DeleteMessage removes the message with the given id from whichever thread
// holds it.
type DeleteMessage struct {
	ID string `json:"id" yaml:"id"`
}

func (DeleteMessage) Type() Type { return TypeDeleteMessage }

func (a DeleteMessage) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: %s requires id", ErrMalformedAction, TypeDeleteMessage)
	}
	return nil
}

// Unknown carries an action type no decoder is registered for. Reducers
// treat it as an identity transition.
type Unknown struct {
	Kind Type
}

func (a Unknown) Type() Type { return a.Kind }

func (Unknown) Validate() error { return nil }

// Deref returns the value form of pointers to the built-in action types so
// that *AddMessage and AddMessage are reduced identically. A nil pointer
// yields a nil Action. Other actions are returned as is.
func Deref(a Action) Action {
	switch act := a.(type) {
	case *OpenThread:
		if act == nil {
			return nil
		}
		return *act
	case *AddMessage:
		if act == nil {
			return nil
		}
		return *act
	case *DeleteMessage:
		if act == nil {
			return nil
		}
		return *act
	case *Unknown:
		if act == nil {
			return nil
		}
		return *act
	default:
		return a
	}
}
