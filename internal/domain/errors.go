package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateWord    = errors.New("word already exists")
	ErrWordNotFound     = errors.New("word not found")
	ErrNoWordsAvailable = errors.New("no words available")
	ErrMalformedInput   = errors.New("malformed input")
	ErrNoActiveCard     = errors.New("no active card")
)

// StoreError wraps a failure of the persistent store
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
