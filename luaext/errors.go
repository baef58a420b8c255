package luaext

import "errors"

var (
	// ErrHostClosed is returned when a closed host is used.
	ErrHostClosed = errors.New("lua host closed")
)
