package store

import "fmt"

// LoadError reports a failed read or decode of the people source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load people from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

type DuplicateIDError struct {
	ID int
}

func (e DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate person id: %d", e.ID)
}
