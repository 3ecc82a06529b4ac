package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the computation is still
// running after the timeout elapses.
var ErrTimeout = errors.New("async operation timed out")
