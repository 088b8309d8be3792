package platform

import "log"

// Announcement event keys understood by the speech backend.
const (
	AnnounceWarning = "session_warning"
	AnnounceOver    = "session_over"
)

var phrases = map[string]string{
	AnnounceWarning: "Уважаемый игрок, до конца сеанса осталось пять минут",
	AnnounceOver:    "Время сеанса вышло",
}

// Announcer plays a spoken notification for a session event. Announce
// never blocks: playback runs on its own goroutine and failures are
// logged, not returned.
type Announcer interface {
	Announce(eventKey string)
}

// speaker converts one phrase to audio, synchronously.
type speaker interface {
	speak(text string) error
}

type announcer struct {
	speaker speaker
}

// NewAnnouncer returns the platform-specific speech backend. On systems
// without a usable synthesizer the announcer degrades to log lines.
func NewAnnouncer() Announcer {
	return &announcer{speaker: newSpeaker()}
}

func (a *announcer) Announce(eventKey string) {
	phrase, ok := phrases[eventKey]
	if !ok {
		log.Printf("speech: unknown event key %q", eventKey)
		return
	}
	go func() {
		if err := a.speaker.speak(phrase); err != nil {
			log.Printf("speech: %v", err)
		}
	}()
}

// silentSpeaker is the fallback when no synthesizer is available.
type silentSpeaker struct{}

func (silentSpeaker) speak(text string) error {
	log.Printf("[speech disabled] %s", text)
	return nil
}
