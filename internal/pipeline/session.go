package pipeline

import "context"

// Processor runs one upload end to end. *Pipeline implements it.
type Processor interface {
	Process(ctx context.Context, u Upload) (*Result, error)
}

// State is the dashboard's position in the upload flow.
type State string

const (
	StateAwaitingUpload State = "awaiting_upload"
	StateRendered       State = "rendered"
)

// Session tracks one user's upload flow. The zero value is awaiting an upload.
// A Session is not safe for concurrent use.
type Session struct {
	state  State
	result *Result
	err    error
}

// State returns the current state.
func (s *Session) State() State {
	if s.state == "" {
		return StateAwaitingUpload
	}
	return s.state
}

// Result returns the last successfully rendered upload, or nil.
func (s *Session) Result() *Result { return s.result }

// Err returns the error of the last failed submission, cleared on success.
func (s *Session) Err() error { return s.err }

// Submit processes an upload. On success the session moves to rendered and
// the result replaces any earlier one. On failure the session returns to
// awaiting an upload with Err set, and the earlier result is kept.
func (s *Session) Submit(ctx context.Context, p Processor, u Upload) error {
	res, err := p.Process(ctx, u)
	if err != nil {
		s.state = StateAwaitingUpload
		s.err = err
		return err
	}
	s.state = StateRendered
	s.result = res
	s.err = nil
	return nil
}
