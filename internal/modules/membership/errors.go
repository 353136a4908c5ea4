package membership

import "errors"

var ErrNotFound = errors.New("membership type not found")
