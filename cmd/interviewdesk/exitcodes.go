package main

import (
	"errors"

	"github.com/abhishek622/interviewdesk/internal/api"
	"github.com/abhishek622/interviewdesk/internal/validate"
)

type cliError struct {
	code int
	err  error
	// shown is set when the notifier already printed the message.
	shown bool
}

func (e *cliError) Error() string {
	return e.err.Error()
}

func (e *cliError) Unwrap() error {
	return e.err
}

const (
	exitOK         = 0
	exitValidation = 2
	exitUsage      = 3
	exitAuth       = 4
	exitServer     = 5
)

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: code, err: err}
}

// reported classifies an error the console has already shown to the user.
func reported(err error) error {
	if err == nil {
		return nil
	}
	return &cliError{code: classify(err), err: err, shown: true}
}

func classify(err error) int {
	var (
		ve *validate.ValidationError
		fe *api.FieldError
		ae *api.AuthError
		ge *api.GenericError
	)
	switch {
	case errors.As(err, &ve), errors.As(err, &fe):
		return exitValidation
	case errors.As(err, &ae):
		return exitAuth
	case errors.As(err, &ge):
		if ge.Status >= 400 && ge.Status < 500 {
			return exitValidation
		}
		return exitServer
	}
	return 1
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.code
	}
	return 1
}

func alreadyShown(err error) bool {
	var ce *cliError
	return errors.As(err, &ce) && ce.shown
}
