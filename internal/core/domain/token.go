package domain

import "errors"

var ErrTokenExpired = errors.New("token expired")
var ErrTokenInvalid = errors.New("token invalid")
var ErrTokenMalformed = errors.New("token malformed")
