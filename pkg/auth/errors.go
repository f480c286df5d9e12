package auth

import "errors"

var ErrMalformedCredentials = errors.New("malformed device credentials")
