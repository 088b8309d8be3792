//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

type sapiSpeaker struct{}

func newSpeaker() speaker {
	return sapiSpeaker{}
}

func (sapiSpeaker) speak(text string) error {
	// Single quotes delimit the PowerShell string literal; embedded ones
	// are doubled.
	escaped := strings.ReplaceAll(text, "'", "''")
	script := fmt.Sprintf(
		"Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak('%s')",
		escaped,
	)
	output, err := exec.Command("powershell", "-NoProfile", "-Command", script).CombinedOutput()
	if err != nil {
		return fmt.Errorf("sapi speak: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
