package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/mmcdole/snapfeed/internal/domain"
	"github.com/mmcdole/snapfeed/internal/tui/styles"
	"golang.org/x/term"
)

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

const maxKeyAttempts = 3

var errNoTerminal = errors.New("no access key configured; set api.access_key or SNAPFEED_API_ACCESS_KEY")

// promptAccessKey reads an access key from the terminal without echo.
func promptAccessKey() (string, error) {
	fd := int(syscall.Stdin)
	if !term.IsTerminal(fd) {
		return "", errNoTerminal
	}

	fmt.Print("Unsplash access key: ")
	keyBytes, err := term.ReadPassword(fd)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read access key: %w", err)
	}
	return strings.TrimSpace(string(keyBytes)), nil
}

// runSetupFlow prompts for an access key until one is accepted by the API,
// then saves it.
func runSetupFlow(deps *Dependencies, client domain.PhotoClient) (string, error) {
	out := deps.Stdout

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Welcome to snapfeed!")
	fmt.Fprintln(out, "Create an access key at https://unsplash.com/oauth/applications")
	fmt.Fprintln(out)

	for attempt := 1; attempt <= maxKeyAttempts; attempt++ {
		key, err := deps.PromptKey()
		if err != nil {
			return "", err
		}
		if key == "" {
			fmt.Fprintln(out, "Access key cannot be empty. Please try again.")
			continue
		}

		err = verifyKeyWithSpinner(deps.Ctx, out, client, key)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUnauthorized):
			fmt.Fprintf(out, "✗ %s\n\n", domain.MsgUnauthorized)
			continue
		default:
			// Keep the key; the feed reports connectivity problems itself
			fmt.Fprintf(out, "! Could not verify key: %s\n", domain.FailureMessage(err))
		}

		if err := deps.SaveKey(key); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintln(out, "✓ Access key saved!")
		return key, nil
	}

	return "", fmt.Errorf("no valid access key after %d attempts", maxKeyAttempts)
}

// verifyKeyWithSpinner requests a single photo with key while animating a spinner
func verifyKeyWithSpinner(ctx context.Context, out io.Writer, client domain.PhotoClient, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.ListPhotos(ctx, key, 1, 1)
		resultCh <- err
	}()

	frame := 0
	fmt.Fprintf(out, "\r%s Checking access key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Fprint(out, clearSpinnerLine)
			return err

		case <-ticker.C:
			frame++
			fmt.Fprintf(out, "\r%s Checking access key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
		}
	}
}

// stdinIsTerminal reports whether the TUI can take over the terminal
func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
