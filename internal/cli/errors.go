package cli

import "strconv"

// notFoundError is returned by lookups of a person id that is not in the
// directory.
type notFoundError struct {
	id int
}

func (e notFoundError) Error() string {
	return "person not found: " + strconv.Itoa(e.id)
}

func errPersonNotFound(id int) error {
	return notFoundError{id: id}
}
