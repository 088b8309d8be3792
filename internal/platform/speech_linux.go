//go:build linux

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

type espeakSpeaker struct {
	espeakPath string
}

func newSpeaker() speaker {
	path, err := exec.LookPath("espeak")
	if err != nil {
		path, err = exec.LookPath("espeak-ng")
	}
	if err != nil {
		return silentSpeaker{}
	}
	return &espeakSpeaker{espeakPath: path}
}

func (speaker *espeakSpeaker) speak(text string) error {
	output, err := exec.Command(speaker.espeakPath, text).CombinedOutput()
	if err != nil {
		return fmt.Errorf("espeak: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
