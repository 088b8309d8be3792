package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/segmentio/encoding/json"
)

// ErrGameExists indicates a catalog entry with that name already exists.
var ErrGameExists = errors.New("game already in catalog")

// ErrGameUnknown indicates no catalog entry with that name.
var ErrGameUnknown = errors.New("game not in catalog")

// Game maps a display name to the OS process the session gates.
type Game struct {
	Name    string `json:"name"`
	Process string `json:"process"`
}

// DefaultGames seeds a fresh installation.
func DefaultGames() []Game {
	return []Game{
		{Name: "Beat Saber", Process: "beat_saber.exe"},
		{Name: "Superhot VR", Process: "superhot.exe"},
		{Name: "Half-Life: Alyx", Process: "hl_alyx.exe"},
	}
}

// Manager owns the persisted game catalog. All methods are safe for
// concurrent use; the UI reads it while the watcher reloads it.
type Manager struct {
	mu    sync.Mutex
	path  string
	games []Game
}

// Open loads the catalog at path, writing the default catalog first if
// the file does not exist.
func Open(path string) (*Manager, error) {
	manager := &Manager{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		manager.games = DefaultGames()
		if err := manager.save(); err != nil {
			return nil, err
		}
		return manager, nil
	}
	if err := manager.Reload(); err != nil {
		return nil, err
	}
	return manager, nil
}

// Path returns the backing file path.
func (manager *Manager) Path() string {
	return manager.path
}

// Reload re-reads the backing file, replacing the in-memory catalog.
func (manager *Manager) Reload() error {
	rawData, err := os.ReadFile(manager.path)
	if err != nil {
		return fmt.Errorf("read game catalog: %w", err)
	}

	var games []Game
	if err := json.Unmarshal(rawData, &games); err != nil {
		return fmt.Errorf("parse game catalog: %w", err)
	}

	manager.mu.Lock()
	manager.games = games
	manager.mu.Unlock()
	return nil
}

// Games returns a copy of the catalog.
func (manager *Manager) Games() []Game {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	return append([]Game(nil), manager.games...)
}

// Names returns the display names in catalog order.
func (manager *Manager) Names() []string {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	names := make([]string, 0, len(manager.games))
	for _, game := range manager.games {
		names = append(names, game.Name)
	}
	return names
}

// ProcessFor returns the process name registered for a game.
func (manager *Manager) ProcessFor(name string) (string, bool) {
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for _, game := range manager.games {
		if game.Name == name {
			return game.Process, true
		}
	}
	return "", false
}

// Add appends a game and persists the catalog.
func (manager *Manager) Add(name, process string) error {
	if name == "" || process == "" {
		return fmt.Errorf("add game: name and process must not be empty")
	}

	manager.mu.Lock()
	for _, game := range manager.games {
		if game.Name == name {
			manager.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrGameExists, name)
		}
	}
	manager.games = append(manager.games, Game{Name: name, Process: process})
	manager.mu.Unlock()

	return manager.save()
}

// Remove deletes a game by name and persists the catalog.
func (manager *Manager) Remove(name string) error {
	manager.mu.Lock()
	found := false
	games := manager.games[:0]
	for _, game := range manager.games {
		if game.Name == name {
			found = true
			continue
		}
		games = append(games, game)
	}
	manager.games = games
	manager.mu.Unlock()

	if !found {
		return fmt.Errorf("%w: %s", ErrGameUnknown, name)
	}
	return manager.save()
}

func (manager *Manager) save() error {
	manager.mu.Lock()
	games := append([]Game(nil), manager.games...)
	manager.mu.Unlock()

	serialized, err := json.MarshalIndent(games, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal game catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(manager.path), 0o755); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	// Write-then-rename so the watcher never reloads a half-written file.
	temp, err := os.CreateTemp(filepath.Dir(manager.path), ".games-*.json")
	if err != nil {
		return fmt.Errorf("write game catalog: %w", err)
	}
	if _, err := temp.Write(serialized); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return fmt.Errorf("write game catalog: %w", err)
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("write game catalog: %w", err)
	}
	if err := os.Chmod(temp.Name(), 0o644); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("write game catalog: %w", err)
	}
	if err := os.Rename(temp.Name(), manager.path); err != nil {
		os.Remove(temp.Name())
		return fmt.Errorf("write game catalog: %w", err)
	}
	return nil
}
