package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"vrtimer/internal/catalog"
	"vrtimer/internal/core/session"
	"vrtimer/internal/platform"
	"vrtimer/internal/storage"
	"vrtimer/internal/ui/preferences"
	"vrtimer/internal/ui/timer"
	"vrtimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "VRClubTimer"

// controller owns the one active engine and the collaborators its
// observer needs. All methods run on the Fyne event goroutine.
type controller struct {
	settings   preferences.Settings
	games      *catalog.Manager
	terminator platform.Terminator
	announcer  platform.Announcer

	panel       *timer.Window
	trayManager *tray.Manager

	engine *session.Engine
}

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("club.vrtimer.app")

	service := platform.NewService()
	configDir, err := service.GetConfigDir()
	if err != nil {
		log.Printf("config dir: %v", err)
		return
	}
	settingsPath := filepath.Join(configDir, appName, "settings.yaml")
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		log.Printf("load settings: %v (using defaults)", err)
	}

	games, err := catalog.Open(filepath.Join(configDir, appName, "games.json"))
	if err != nil {
		log.Printf("open game catalog: %v", err)
		return
	}

	control := &controller{
		settings:   settings,
		games:      games,
		terminator: platform.NewTerminator(),
		announcer:  platform.NewAnnouncer(),
	}

	control.panel = timer.New(fyneApp, settings, games.Names(), timer.Callbacks{
		OnStart:       control.startSession,
		OnTogglePause: control.togglePause,
		OnStop:        control.stopSession,
		OnExtend:      control.extendSession,
	})

	var prefsWindow *preferences.Window
	prefsWindow = preferences.New(fyneApp, settings, games, func(updated preferences.Settings) {
		previous := control.settings
		control.settings = updated
		control.panel.ApplySettings(updated)
		if err := storage.SaveSettings(settingsPath, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
		// Re-render the form so free-text fields show the parsed values.
		prefsWindow.UpdateSettings(updated)
		if updated.AutostartEnabled != previous.AutostartEnabled {
			applyAutostart(service, updated.AutostartEnabled)
		}
	}, func() {
		control.panel.SetGames(games.Names())
	})

	watcher, err := catalog.Watch(games, func() {
		fyne.Do(func() {
			control.panel.SetGames(games.Names())
			prefsWindow.RefreshGames()
		})
	})
	if err != nil {
		log.Printf("catalog watcher: %v", err)
	} else {
		defer func() {
			_ = watcher.Close()
		}()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		control.trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowPanel:   control.panel.Show,
			OnPreferences: prefsWindow.Show,
			OnTogglePause: control.togglePause,
			OnExtend: func() {
				control.extendSession(5)
			},
			OnStop: control.stopSession,
			OnQuit: func() {
				control.stopSession()
				fyneApp.Quit()
			},
		})
		control.panel.Window().SetCloseIntercept(func() {
			control.panel.Window().Hide()
		})
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	control.panel.Show()
	fyneApp.Run()
}

func (control *controller) startSession(gameName string, minutes float64) {
	if gameName == "" {
		control.panel.SetStatus("Error: no game selected")
		return
	}
	process, ok := control.games.ProcessFor(gameName)
	if !ok {
		control.panel.SetStatus(fmt.Sprintf("Error: unknown game %q", gameName))
		return
	}

	// One engine at a time: a running session is cancelled and replaced.
	if control.engine != nil {
		if err := control.engine.Cancel(); err != nil {
			log.Printf("cancel session %s: %v", control.engine.ID(), err)
		}
	}

	sessionConfig := control.settings.SessionConfig()
	engine, err := session.New(minutes, sessionConfig.WarningThresholds, control.observer(process), session.Options{
		StartBuffer: sessionConfig.StartBuffer,
	})
	if err != nil {
		control.panel.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	if err := engine.Start(); err != nil {
		control.panel.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	control.engine = engine
	log.Printf("session %s started: %s (%.0f min)", engine.ID(), gameName, minutes)

	control.panel.SetControlsEnabled(true)
	control.panel.SetPaused(false)
	control.panel.SetStatus(fmt.Sprintf("Session running: %s", gameName))
	if control.trayManager != nil {
		control.trayManager.SetInSession(true)
		control.trayManager.SetPaused(false)
	}
}

func (control *controller) togglePause() {
	if control.engine == nil {
		return
	}
	state := control.engine.TogglePause()
	paused := state == session.StatePaused
	control.panel.SetPaused(paused)
	if paused {
		control.panel.SetStatus("Paused")
	} else {
		control.panel.SetStatus("Session running")
	}
	if control.trayManager != nil {
		control.trayManager.SetPaused(paused)
	}
}

func (control *controller) stopSession() {
	if control.engine != nil {
		if err := control.engine.Cancel(); err != nil {
			log.Printf("cancel session %s: %v", control.engine.ID(), err)
		}
		control.engine = nil
	}
	control.panel.ResetDisplay()
	control.panel.SetControlsEnabled(false)
	control.panel.SetPaused(false)
	control.panel.SetStatus("Session stopped")
	if control.trayManager != nil {
		control.trayManager.SetInSession(false)
		control.trayManager.SetPaused(false)
		control.trayManager.SetStatus("idle")
	}
}

func (control *controller) extendSession(minutes float64) {
	if control.engine == nil {
		return
	}
	if err := control.engine.Extend(minutes); err != nil {
		control.panel.SetStatus(fmt.Sprintf("Error: %v", err))
		return
	}
	remaining, total, _ := control.engine.Snapshot()
	control.panel.SetCountdown(remaining, total)
}

// observer builds the event bridge for one session. Engine callbacks
// arrive on the progression goroutine; UI work is marshalled with
// fyne.Do, speech and process kill run on their own goroutines.
func (control *controller) observer(process string) session.Observer {
	finishConfig := control.settings.FinishConfig()

	return session.ObserverFuncs{
		Tick: func(remaining, total int) {
			fyne.Do(func() {
				control.panel.SetCountdown(remaining, total)
				if control.trayManager != nil {
					control.trayManager.SetStatus(formatRemaining(remaining))
				}
			})
		},
		Warning: func(threshold int) {
			if finishConfig.SpeechEnabled {
				control.announcer.Announce(platform.AnnounceWarning)
			}
			fyne.Do(func() {
				control.panel.SetStatus(fmt.Sprintf("ATTENTION: %s left", formatRemaining(threshold)))
			})
		},
		Finish: func() {
			if finishConfig.SpeechEnabled {
				control.announcer.Announce(platform.AnnounceOver)
			}
			fyne.Do(func() {
				control.panel.ResetDisplay()
				control.panel.SetControlsEnabled(false)
				control.panel.SetStatus("Session over")
				if control.trayManager != nil {
					control.trayManager.SetInSession(false)
					control.trayManager.SetStatus("idle")
				}
			})
			go control.terminateAfter(process, finishConfig.TerminateDelay)
		},
	}
}

func (control *controller) terminateAfter(process string, delay time.Duration) {
	if process == "" {
		return
	}
	if delay > 0 {
		time.Sleep(delay)
	}
	found, err := control.terminator.Terminate(process)
	message := fmt.Sprintf("Session over: %s closed", process)
	switch {
	case err != nil:
		log.Printf("terminate %s: %v", process, err)
		message = fmt.Sprintf("Session over: could not close %s", process)
	case !found:
		log.Printf("terminate %s: process not found", process)
		message = fmt.Sprintf("Session over: %s not running", process)
	default:
		log.Printf("terminated %s", process)
	}
	fyne.Do(func() {
		control.panel.SetStatus(message)
	})
}

func applyAutostart(service platform.Service, enabled bool) {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("autostart: resolve executable: %v", err)
		return
	}
	if enabled {
		err = service.EnableAutostart(appName, execPath)
	} else {
		err = service.DisableAutostart(appName)
	}
	if err != nil {
		log.Printf("autostart: %v", err)
	}
}

func formatRemaining(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
