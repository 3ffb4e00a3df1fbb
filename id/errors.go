package id

import "fmt"

// ValidationError reports identifier text that does not follow the expected grammar.
type ValidationError struct {
	Cause string
	Input string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %q (expected \"source:slug\", \"tt...\" or \"tmdb:...\")", e.Cause, e.Input)
}
