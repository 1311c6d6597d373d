package transmit

import "fmt"

// SerializationError is returned when an object could not be encoded or decoded
type SerializationError struct {
	err error
}

// ErrSerialization wraps err into a SerializationError
func ErrSerialization(err error) error {
	return &SerializationError{err}
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization failed: %v", e.err)
}

// Unwrap returns the underlying error
func (e *SerializationError) Unwrap() error {
	return e.err
}

// ConnectionError is returned when an object could not be transmitted
type ConnectionError struct {
	err error
}

// ErrConnection wraps err into a ConnectionError
func ErrConnection(err error) error {
	return &ConnectionError{err}
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection failed: %v", e.err)
}

// Unwrap returns the underlying error
func (e *ConnectionError) Unwrap() error {
	return e.err
}
