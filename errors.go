package colorwire

import (
	"fmt"
)

// InvalidateError is returned by Invalidate only when both the generation
// bump and the delete failed, i.e. the key may still serve a stale color.
type InvalidateError struct {
	Key     string
	BumpErr error
	DelErr  error
}

func (e *InvalidateError) Error() string {
	return fmt.Sprintf("colorwire: invalidate %q: gen bump failed: %v; delete failed: %v",
		e.Key, e.BumpErr, e.DelErr)
}

func (e *InvalidateError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.BumpErr != nil {
		errs = append(errs, e.BumpErr)
	}
	if e.DelErr != nil {
		errs = append(errs, e.DelErr)
	}
	return errs
}
