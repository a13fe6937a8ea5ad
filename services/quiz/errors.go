package quiz

import "fmt"

const (
	SourceWords      = "words"
	SourceDictionary = "dictionary"
)

// FetchError reports which remote service failed while building a question.
type FetchError struct {
	Source string
	Word   string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Word != "" {
		return fmt.Sprintf("%s: %q: %v", e.Source, e.Word, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
