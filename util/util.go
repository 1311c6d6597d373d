package util

import "fmt"

// ReturnFirstErr returns the first non-nil error of the passed errors
func ReturnFirstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ReturnErrOnPanic recovers a panic in the deferring function and stores it in err
func ReturnErrOnPanic(err *error) func() {
	return func() {
		if r := recover(); r != nil {
			*err = fmt.Errorf("recovered from panic: %v", r)
		}
	}
}
