//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

type saySpeaker struct{}

func newSpeaker() speaker {
	return saySpeaker{}
}

func (saySpeaker) speak(text string) error {
	output, err := exec.Command("say", text).CombinedOutput()
	if err != nil {
		return fmt.Errorf("say: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
