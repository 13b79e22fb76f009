// imagen generates an image from a text prompt with Google Gemini.
package main

import (
	"os"

	"github.com/1broseidon/imagen/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
