package platform

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSpeaker struct {
	mu      sync.Mutex
	spoken  []string
	spokeCh chan struct{}
}

func (speaker *recordingSpeaker) speak(text string) error {
	speaker.mu.Lock()
	speaker.spoken = append(speaker.spoken, text)
	speaker.mu.Unlock()
	speaker.spokeCh <- struct{}{}
	return nil
}

func TestAnnounceSpeaksKnownPhrases(t *testing.T) {
	speaker := &recordingSpeaker{spokeCh: make(chan struct{}, 2)}
	announcer := &announcer{speaker: speaker}

	announcer.Announce(AnnounceWarning)
	announcer.Announce(AnnounceOver)

	for i := 0; i < 2; i++ {
		select {
		case <-speaker.spokeCh:
		case <-time.After(2 * time.Second):
			t.Fatal("announcement never played")
		}
	}

	speaker.mu.Lock()
	defer speaker.mu.Unlock()
	require.Len(t, speaker.spoken, 2)
	assert.Contains(t, speaker.spoken, phrases[AnnounceWarning])
	assert.Contains(t, speaker.spoken, phrases[AnnounceOver])
}

func TestAnnounceIgnoresUnknownKey(t *testing.T) {
	speaker := &recordingSpeaker{spokeCh: make(chan struct{}, 1)}
	announcer := &announcer{speaker: speaker}

	announcer.Announce("no_such_event")

	select {
	case <-speaker.spokeCh:
		t.Fatal("nothing should be spoken for an unknown key")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestEveryAnnouncementKeyHasAPhrase(t *testing.T) {
	for _, key := range []string{AnnounceWarning, AnnounceOver} {
		assert.NotEmpty(t, phrases[key], "key %s", key)
	}
}
