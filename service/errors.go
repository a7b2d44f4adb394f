package service

import "github.com/cockroachdb/errors"

var (
	ErrNotFound   = errors.New("service: key not found")
	ErrEmptyKey   = errors.New("service: empty key")
	ErrOutboxFull = errors.New("service: outbox full")
)
