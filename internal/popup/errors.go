package popup

import "errors"

// ErrNoSelection is returned when a commit is requested with nothing
// highlighted.
var ErrNoSelection = errors.New("popup: no item selected")
