package check

import (
	"errors"
	"fmt"
)

// ErrPassFailed is matched by every *PassError.
var ErrPassFailed = errors.New("check pass failed")

// PassError reports the mandatory pass that aborted a check. Err is the
// pass error, unchanged.
type PassError struct {
	Pass string
	Err  error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("%s pass failed: %v", e.Pass, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPassFailed) hold for any PassError.
func (e *PassError) Is(target error) bool {
	return target == ErrPassFailed
}
