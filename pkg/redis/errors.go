package redis

import "errors"

var (
	ErrEmptyHost         = errors.New("redis: empty host")
	ErrInvalidPort       = errors.New("redis: invalid port")
	ErrConnectionFailed  = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
