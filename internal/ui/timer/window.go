package timer

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"vrtimer/internal/ui/preferences"
)

// Callbacks defines control-panel action handlers.
type Callbacks struct {
	OnStart       func(gameName string, minutes float64)
	OnTogglePause func()
	OnStop        func()
	OnExtend      func(minutes float64)
}

// Window is the operator control panel: game selection, the countdown
// display, and session controls.
type Window struct {
	window    fyne.Window
	callbacks Callbacks

	games        *widget.Select
	status       *widget.Label
	clock        *canvas.Text
	progress     *widget.ProgressBar
	presetRow    *fyne.Container
	customEntry  *widget.Entry
	pauseButton  *widget.Button
	stopButton   *widget.Button
	extendButton *widget.Button
}

const extendStepMinutes = 5

// New creates the control panel window.
func New(app fyne.App, settings preferences.Settings, gameNames []string, callbacks Callbacks) *Window {
	window := app.NewWindow("VR Club Timer")

	games := widget.NewSelect(gameNames, nil)
	if len(gameNames) > 0 {
		games.SetSelected(gameNames[0])
	}

	status := widget.NewLabel("Waiting")
	status.TextStyle = fyne.TextStyle{Italic: true}

	clock := canvas.NewText("00:00:00", color.NRGBA{R: 138, G: 43, B: 226, A: 255})
	clock.TextStyle = fyne.TextStyle{Bold: true}
	clock.TextSize = 60
	clock.Alignment = fyne.TextAlignCenter

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	customEntry := widget.NewEntry()
	customEntry.SetText(strconv.Itoa(settings.DefaultCustomMinutes))

	panel := &Window{
		window:      window,
		callbacks:   callbacks,
		games:       games,
		status:      status,
		clock:       clock,
		progress:    progress,
		customEntry: customEntry,
	}

	panel.presetRow = container.NewHBox()
	panel.rebuildPresets(settings.PresetMinutes)

	startButton := widget.NewButton("Start", func() {
		panel.startCustom()
	})
	customRow := container.NewHBox(layout.NewSpacer(), customEntry, startButton, layout.NewSpacer())

	panel.pauseButton = widget.NewButton("Pause", func() {
		if callbacks.OnTogglePause != nil {
			callbacks.OnTogglePause()
		}
	})
	panel.stopButton = widget.NewButton("Stop / Reset", func() {
		if callbacks.OnStop != nil {
			callbacks.OnStop()
		}
	})
	panel.extendButton = widget.NewButton(fmt.Sprintf("+%d min", extendStepMinutes), func() {
		if callbacks.OnExtend != nil {
			callbacks.OnExtend(extendStepMinutes)
		}
	})
	panel.SetControlsEnabled(false)

	controls := container.NewHBox(
		layout.NewSpacer(),
		panel.pauseButton, panel.stopButton, panel.extendButton,
		layout.NewSpacer(),
	)

	content := container.NewVBox(
		widget.NewLabelWithStyle("Select game:", fyne.TextAlignCenter, fyne.TextStyle{}),
		games,
		container.NewCenter(status),
		container.NewPadded(clock),
		progress,
		container.NewCenter(panel.presetRow),
		customRow,
		controls,
	)

	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(700, 500))

	return panel
}

// Show displays the control panel.
func (panel *Window) Show() {
	panel.window.Show()
	panel.window.RequestFocus()
}

// Window exposes the underlying fyne window for app wiring.
func (panel *Window) Window() fyne.Window {
	return panel.window
}

// SelectedGame returns the chosen game name, empty when none.
func (panel *Window) SelectedGame() string {
	return panel.games.Selected
}

// SetGames replaces the selector options, keeping the current choice
// when it still exists.
func (panel *Window) SetGames(names []string) {
	selected := panel.games.Selected
	panel.games.SetOptions(names)
	for _, name := range names {
		if name == selected {
			panel.games.SetSelected(selected)
			return
		}
	}
	if len(names) > 0 {
		panel.games.SetSelected(names[0])
	} else {
		panel.games.ClearSelected()
	}
}

// ApplySettings refreshes the preset buttons and custom default.
func (panel *Window) ApplySettings(settings preferences.Settings) {
	panel.rebuildPresets(settings.PresetMinutes)
	panel.customEntry.SetText(strconv.Itoa(settings.DefaultCustomMinutes))
}

// SetStatus updates the status line.
func (panel *Window) SetStatus(text string) {
	panel.status.SetText(text)
}

// SetCountdown renders the remaining time and progress. The bar drains
// from full to empty as the session runs out.
func (panel *Window) SetCountdown(remainingSeconds, totalSeconds int) {
	panel.clock.Text = formatClock(remainingSeconds)
	panel.clock.Refresh()
	panel.progress.SetValue(progressValue(remainingSeconds, totalSeconds))
}

// ResetDisplay blanks the countdown.
func (panel *Window) ResetDisplay() {
	panel.clock.Text = formatClock(0)
	panel.clock.Refresh()
	panel.progress.SetValue(0)
}

// SetControlsEnabled toggles the in-session buttons.
func (panel *Window) SetControlsEnabled(enabled bool) {
	if enabled {
		panel.pauseButton.Enable()
		panel.stopButton.Enable()
		panel.extendButton.Enable()
	} else {
		panel.pauseButton.Disable()
		panel.stopButton.Disable()
		panel.extendButton.Disable()
	}
}

// SetPaused flips the pause button caption.
func (panel *Window) SetPaused(paused bool) {
	if paused {
		panel.pauseButton.SetText("Resume")
	} else {
		panel.pauseButton.SetText("Pause")
	}
}

func (panel *Window) rebuildPresets(presetMinutes []int) {
	panel.presetRow.RemoveAll()
	for _, minutes := range presetMinutes {
		minutes := minutes
		panel.presetRow.Add(widget.NewButton(fmt.Sprintf("%d min", minutes), func() {
			panel.start(float64(minutes))
		}))
	}
	panel.presetRow.Refresh()
}

func (panel *Window) startCustom() {
	minutes, err := strconv.ParseFloat(strings.TrimSpace(panel.customEntry.Text), 64)
	if err != nil || minutes <= 0 {
		panel.SetStatus("Error: enter a positive number of minutes")
		return
	}
	panel.start(minutes)
}

func (panel *Window) start(minutes float64) {
	if panel.callbacks.OnStart != nil {
		panel.callbacks.OnStart(panel.games.Selected, minutes)
	}
}

// formatClock renders seconds as HH:MM:SS.
func formatClock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// progressValue maps the countdown onto [0,1], full at session start.
func progressValue(remainingSeconds, totalSeconds int) float64 {
	if totalSeconds <= 0 {
		return 0
	}
	value := float64(remainingSeconds) / float64(totalSeconds)
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
