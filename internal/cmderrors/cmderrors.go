// Package cmderrors defines error types for reporting problems with
// interactive console input in a way that separates the message shown to the
// user from the technical description of the error.
package cmderrors

import "fmt"

// interpreterError is an error caused by attempting to interpret input. Either
// the input could not be understood or it specifies doing something that is
// impossible or not allowed at the current time.
//
// interpreterError includes a human-readable message to show to an operator as
// well as a typical more technical "error message" style message.
type interpreterError struct {
	msg   string
	human string
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// ConsoleMessage shows the message that should be displayed on the console to
// describe the error.
func (e *interpreterError) ConsoleMessage() string {
	return e.human
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Interpreter returns a new interpreterError that has both the message to show
// the user and the technical description of the error.
func Interpreter(console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", console)
	}
	return &interpreterError{
		msg:   technical,
		human: console,
	}
}

// Interpreterf returns a new interpreterError that has a message to show to
// the user and an automatically generated Error() description. The arguments
// given are the format string and the arguments to the format string.
func Interpreterf(consoleFormat string, a ...interface{}) error {
	consoleMessage := fmt.Sprintf(consoleFormat, a...)
	return Interpreter(consoleMessage, "")
}

// WrapInterpreter returns a new interpreterError that has both the message to
// show the user and the technical description of the error, and that wraps
// the given error.
func WrapInterpreter(e error, console, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("got InterpreterError(%q)", console)
	}
	return &interpreterError{
		msg:   technical,
		human: console,
		wrap:  e,
	}
}

// WrapInterpreterf returns a new interpreterError that has both the message to
// show the user and an automatically generated Error() description, and that
// wraps the given error. The arguments given are the error to wrap, then the
// format followed by its arguments.
func WrapInterpreterf(e error, consoleFormat string, a ...interface{}) error {
	consoleMessage := fmt.Sprintf(consoleFormat, a...)
	return WrapInterpreter(e, consoleMessage, "")
}

// ConsoleMessage gets the message to display on the console for the given
// error. If it is one of the types defined in cmderrors, the special console
// message is returned (if it exists). Otherwise, err.Error() is returned.
func ConsoleMessage(err error) string {
	if intErr, ok := err.(*interpreterError); ok {
		return intErr.ConsoleMessage()
	}
	return err.Error()
}
