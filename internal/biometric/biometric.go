// Package biometric abstracts the device's biometric confirmation
// capability: hardware presence, enrollment, and a challenge prompt.
package biometric

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Capability is the device-provided fingerprint/face confirmation mechanism.
type Capability interface {
	// HasHardware reports whether the device has biometric hardware.
	HasHardware(ctx context.Context) bool
	// IsEnrolled reports whether at least one biometric is enrolled.
	IsEnrolled(ctx context.Context) bool
	// Challenge shows the prompt and reports whether the user confirmed.
	Challenge(ctx context.Context, prompt string) (bool, error)
}

// Unsupported is a Capability for devices without biometric hardware.
type Unsupported struct{}

func (Unsupported) HasHardware(context.Context) bool { return false }
func (Unsupported) IsEnrolled(context.Context) bool  { return false }
func (Unsupported) Challenge(context.Context, string) (bool, error) {
	return false, nil
}

// Terminal emulates the biometric challenge with a y/N confirmation on a
// terminal, standing in for the platform sensor in the demo client.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

func (t *Terminal) HasHardware(context.Context) bool { return true }
func (t *Terminal) IsEnrolled(context.Context) bool  { return true }

// Challenge prints the prompt and reads a confirmation line.
func (t *Terminal) Challenge(_ context.Context, prompt string) (bool, error) {
	fmt.Fprintf(t.Out, "%s [y/N]: ", prompt)

	scanner := bufio.NewScanner(t.In)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, err
		}
		return false, nil
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}
