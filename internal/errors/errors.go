// Package errors is our internal errors package. It should be used in place of the standard "errors" package,
// "golang.org/x/xerrors", or "fmt.Errorf".
// This package ensures that all errors have a correct category & collect stack-traces.
package errors

import "golang.org/x/xerrors"

// ConfigurationError represent a configuration error. It carries a description of what is wrong and a resolution
// pointing towards the configuration value that needs to change.
type ConfigurationError struct {
	E           error
	description string
	resolution  string
}

// NewConfigurationError returns a new ConfigurationError
func NewConfigurationError(title, description, resolution string) ConfigurationError {
	return ConfigurationError{
		E:           xerrors.New(title),
		description: description,
		resolution:  resolution,
	}
}

// AsConfigurationError checks whether the error is a configuration error
func AsConfigurationError(err error) (ConfigurationError, bool) {
	var e ConfigurationError
	ok := As(err, &e)
	return e, ok
}

// Error returns the title of this error
func (e ConfigurationError) Error() string {
	return e.E.Error()
}

// Description returns a longer explanation of what went wrong
func (e ConfigurationError) Description() string {
	return e.description
}

// Resolution returns a hint on how to fix the configuration
func (e ConfigurationError) Resolution() string {
	return e.resolution
}

// Type returns the human-readable category of this error
func (e ConfigurationError) Type() string {
	return "Configuration Error"
}

func (e ConfigurationError) Unwrap() error {
	return e.E
}

// InputError is an error caused by user input, e.g. a results file that isn't JUnit XML.
type InputError struct {
	E error
}

// NewInputError returns a new InputError
func NewInputError(msg string, a ...any) InputError {
	return InputError{E: xerrors.Errorf(msg, a...)}
}

// AsInputError checks whether the error is an input error
func AsInputError(err error) (InputError, bool) {
	var e InputError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e InputError) Error() string {
	return e.E.Error()
}

func (e InputError) Unwrap() error {
	return e.E
}

// InternalError is an internal error. This error type should only be used if an end-user cannot act upon it and would
// need to reach out for support.
type InternalError struct {
	E error
}

// NewInternalError returns a new InternalError
func NewInternalError(msg string, a ...any) InternalError {
	return InternalError{E: xerrors.Errorf(msg, a...)}
}

// AsInternalError checks whether the error is an internal error
func AsInternalError(err error) (InternalError, bool) {
	var e InternalError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e InternalError) Error() string {
	return e.E.Error()
}

func (e InternalError) Unwrap() error {
	return e.E
}

// SystemError is returned when the CLI encountered a system error. This is most likely either an error during file read
// or a network error.
type SystemError struct {
	E error
}

// NewSystemError returns a new SystemError
func NewSystemError(msg string, a ...any) SystemError {
	return SystemError{E: xerrors.Errorf(msg, a...)}
}

// AsSystemError checks whether the error is a system error
func AsSystemError(err error) (SystemError, bool) {
	var e SystemError
	ok := As(err, &e)
	return e, ok
}

// Error returns the error message of this error
func (e SystemError) Error() string {
	return e.E.Error()
}

func (e SystemError) Unwrap() error {
	return e.E
}
