package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/1broseidon/imagen/client"
	"github.com/1broseidon/imagen/config"
)

const apiKeyURL = "https://aistudio.google.com/app/apikey"

// report writes a diagnostic for err. Every diagnostic starts with "ERROR:".
func report(w io.Writer, err error) {
	var genErr *client.GenerationError
	if !errors.As(err, &genErr) {
		fmt.Fprintf(w, "ERROR: %v\n", err)
		return
	}

	switch genErr.Kind {
	case client.KindMissingCredential:
		fmt.Fprintf(w, "ERROR: %s environment variable not set\n", config.EnvAPIKey)
		fmt.Fprintln(w, "\nTo fix this:")
		fmt.Fprintf(w, "1. Get API key from %s\n", apiKeyURL)
		fmt.Fprintf(w, "2. export %s='your-key-here'\n", config.EnvAPIKey)
	case client.KindEmptyResponse:
		fmt.Fprintln(w, "ERROR: No image generated")
	case client.KindStorage:
		fmt.Fprintf(w, "ERROR: Failed to save image: %v\n", genErr.Err)
	case client.KindInvalidInput:
		fmt.Fprintf(w, "ERROR: %v\n", genErr.Err)
	default:
		fmt.Fprintf(w, "ERROR: Image generation failed: %v\n", genErr.Err)
	}
}
