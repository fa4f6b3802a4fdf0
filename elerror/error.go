package elerror

import "fmt"

type EcholumeError struct {
	Err string
}

func New(format string, args ...interface{}) *EcholumeError {
	return &EcholumeError{Err: fmt.Sprintf(format, args...)}
}

func (e *EcholumeError) Error() string {
	return e.Err
}
