package export

import "errors"

// ErrUnknownFormat is returned by ForFormat for names it does not know.
var ErrUnknownFormat = errors.New("unknown export format")
