// Package xerrors extends Go's stdlib errors pkg.
package xerrors

import "errors"

// Tag tags the given error with the given error tags.
// This is very similar to wrapping with one crucial difference, the tags error messages
// won't be present on the original err, but calling errors.Is(err, tag) will return true.
//
// This is useful when you want to tag an error as an specific kind of error but
// you don't want to change the error message. Like when the message comes from
// a third party that callers may want to show as is, while still being able to
// check its kind with [errors.Is].
//
// Calling [errors.As] to retrieve an error tag will also work.
// Calls to [errors.As] and [errors.Is] will be dispatched to the tags first, in order,
// and then fallback to the original error if they don't match any tag.
// Tagging a nil error returns nil.
func Tag(err error, tags ...error) error {
	if err == nil {
		return nil
	}
	return tagged{err, tags}
}

type tagged struct {
	err  error
	tags []error
}

func (t tagged) Is(target error) bool {
	for _, tag := range t.tags {
		if errors.Is(tag, target) {
			return true
		}
	}
	return errors.Is(t.err, target)
}

func (t tagged) As(target any) bool {
	for _, tag := range t.tags {
		if errors.As(tag, target) {
			return true
		}
	}
	return errors.As(t.err, target)
}

func (t tagged) Unwrap() error {
	return t.err
}

func (t tagged) Error() string {
	return t.err.Error()
}
