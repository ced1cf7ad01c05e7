package wizard

import "errors"

var (
	ErrNotAtSummary     = errors.New("wizard is not at the summary step")
	ErrAlreadySubmitted = errors.New("booking was already submitted")
	ErrDraftIncomplete  = errors.New("draft has validation errors")
)
