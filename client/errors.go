package client

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when no API key was configured.
	ErrMissingCredential = errors.New("API key not configured")

	// ErrNoImageGenerated is returned when the response carries no image data.
	ErrNoImageGenerated = errors.New("no image generated")

	// ErrEmptyPrompt is returned when GenerateImage is called without a prompt.
	ErrEmptyPrompt = errors.New("prompt is empty")
)

// ErrorKind classifies why an image request failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindMissingCredential: no API key; nothing was sent.
	KindMissingCredential
	// KindEmptyResponse: the service answered without image data.
	KindEmptyResponse
	// KindTransport covers provider setup, network, quota and SDK failures.
	KindTransport
	// KindStorage: the image could not be written to disk.
	KindStorage
	// KindInvalidInput: the request was rejected before contacting the service.
	KindInvalidInput
)

func (k ErrorKind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing credential"
	case KindEmptyResponse:
		return "empty response"
	case KindTransport:
		return "transport"
	case KindStorage:
		return "storage"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

// GenerationError is returned by Client.GenerateImage.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newError(kind ErrorKind, err error) error {
	return &GenerationError{Kind: kind, Err: err}
}

// KindOf returns the kind of the first GenerationError in err's chain.
func KindOf(err error) ErrorKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return KindUnknown
}
