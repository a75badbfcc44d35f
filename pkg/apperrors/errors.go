package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the user facing failure taxonomy. Every error surfaced to a user is
// classified as exactly one of these.
type Kind string

const (
	// KindConfiguration means the registry address or network settings are missing or malformed.
	KindConfiguration Kind = "configuration"

	// KindInput means the user supplied something we cannot work with.
	KindInput Kind = "input"

	// KindNetwork means the registry RPC, wallet, or chain could not be reached or refused.
	KindNetwork Kind = "network"

	// KindPublishPartial means the attestation was signed but the on-chain publish failed.
	KindPublishPartial Kind = "publish_partial"

	// KindInternal covers everything not classified above.
	KindInternal Kind = "internal"
)

var defaultNextSteps = map[Kind]string{
	KindConfiguration:  "Set a valid registry address and RPC URL, then try again.",
	KindInput:          "Correct the highlighted input and try again.",
	KindNetwork:        "Check your connection or wallet and retry.",
	KindPublishPartial: "Your signature is saved. Retry publishing from the receipt.",
	KindInternal:       "Try again. If it keeps failing, report the error.",
}

// Error carries a user facing message and a hint describing what to do next.
type Error struct {
	Kind     Kind
	Message  string
	NextStep string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, message string, err error) *Error {
	return &Error{
		Kind:     kind,
		Message:  message,
		NextStep: defaultNextSteps[kind],
		Err:      err,
	}
}

func Configuration(message string, err error) *Error {
	return newError(KindConfiguration, message, err)
}

func Input(message string, err error) *Error {
	return newError(KindInput, message, err)
}

func Network(message string, err error) *Error {
	return newError(KindNetwork, message, err)
}

func PublishPartial(message string, err error) *Error {
	return newError(KindPublishPartial, message, err)
}

// WithNextStep overrides the default hint.
func (e *Error) WithNextStep(step string) *Error {
	e.NextStep = step
	return e
}

// KindOf extracts the classification of err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}

// UserMessage renders the message and next step for display.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		if ae.NextStep == "" {
			return ae.Message
		}
		return fmt.Sprintf("%s %s", ae.Message, ae.NextStep)
	}
	return fmt.Sprintf("%s %s", err.Error(), defaultNextSteps[KindInternal])
}

var (
	ErrActionInProgress      = errors.New("another action is already in progress")
	ErrRegistryNotConfigured = errors.New("registry address is not configured")
)
