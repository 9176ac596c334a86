package survey

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrIncomplete gates scoring and classification until the last page is answered.
	ErrIncomplete = errors.New("survey is not complete")
	// ErrUnknownOption is returned for an answer outside the question's options.
	ErrUnknownOption = errors.New("unknown option")
	// ErrNoSelection is returned when a single-select question gets no answer.
	ErrNoSelection = errors.New("no option selected")
	// ErrSingleAnswer is returned when a single-select question gets several answers.
	ErrSingleAnswer = errors.New("question accepts one answer")
	// ErrAlreadyComplete is returned when answering a finished survey.
	ErrAlreadyComplete = errors.New("survey is already complete")
)

// Session is the questionnaire state of one user. It is passed to and returned
// from the controller explicitly instead of living in shared state.
type Session struct {
	ID        string    `json:"id"`
	Page      int       `json:"page"`
	Responses Responses `json:"responses"`
	Complete  bool      `json:"complete"`
}

// NewSession starts a questionnaire at the first page.
func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		Responses: Responses{},
	}
}

// Total is the number of pages.
func (s *Session) Total() int { return len(questions) }

// Current returns the question on the current page. It returns false once the
// survey is complete.
func (s *Session) Current() (Question, bool) {
	if s.Complete || s.Page < 0 || s.Page >= len(questions) {
		return Question{}, false
	}
	qs := Questions()
	return qs[s.Page], true
}

// Progress returns the number of answered pages and the page count.
func (s *Session) Progress() (answered, total int) {
	if s.Complete {
		return len(questions), len(questions)
	}
	return s.Page, len(questions)
}

// Default returns the answer previously stored for the current page, if any.
func (s *Session) Default() []string {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	return s.Responses.Multi(q.Key)
}

// Answer validates values against the current question, stores them and
// advances. Answering the last page completes the survey.
func (s *Session) Answer(values ...string) error {
	if s.Complete {
		return ErrAlreadyComplete
	}

	q, ok := s.Current()
	if !ok {
		return fmt.Errorf("page %d: %w", s.Page, ErrUnknownOption)
	}

	for _, value := range values {
		if !q.HasOption(value) {
			return fmt.Errorf("%s: %q: %w", q.Key, value, ErrUnknownOption)
		}
	}

	if s.Responses == nil {
		s.Responses = Responses{}
	}

	if q.Multi {
		s.Responses[q.Key] = dedupe(values)
	} else {
		switch len(values) {
		case 0:
			return fmt.Errorf("%s: %w", q.Key, ErrNoSelection)
		case 1:
			s.Responses[q.Key] = values[0]
		default:
			return fmt.Errorf("%s: %w", q.Key, ErrSingleAnswer)
		}
	}

	s.Page++
	if s.Page >= len(questions) {
		s.Page = len(questions)
		s.Complete = true
	}

	return nil
}

// Back moves one page back and keeps the stored answers as defaults.
func (s *Session) Back() {
	s.Complete = false
	if s.Page > len(questions) {
		s.Page = len(questions)
	}
	if s.Page > 0 {
		s.Page--
	}
}

// Reset clears every answer and returns to the first page.
func (s *Session) Reset() {
	s.Page = 0
	s.Responses = Responses{}
	s.Complete = false
}

// Ready returns ErrIncomplete until every page is answered.
func (s *Session) Ready() error {
	if s == nil || !s.Complete {
		return ErrIncomplete
	}
	return nil
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	out := *s
	out.Responses = s.Responses.Clone()
	return &out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		if seen[value] {
			continue
		}
		seen[value] = true
		out = append(out, value)
	}
	return out
}
