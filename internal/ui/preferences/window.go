package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"vrtimer/internal/catalog"
)

// Window handles the settings UI: session options plus the game catalog.
type Window struct {
	window   fyne.Window
	settings Settings
	games    *catalog.Manager
	onSave   func(Settings)
	onGames  func()

	presets    *widget.Entry
	customMin  *widget.Entry
	thresholds *widget.Entry
	buffer     *widget.Entry
	delay      *widget.Entry
	speech     *widget.Check
	autostart  *widget.Check

	gameName    *widget.Entry
	gameProcess *widget.Entry
	gameList    *fyne.Container
	status      *widget.Label
}

// New creates a preferences window. onSave receives the edited settings;
// onGames fires after any catalog change so the main window can refresh
// its game selector.
func New(app fyne.App, settings Settings, games *catalog.Manager, onSave func(Settings), onGames func()) *Window {
	window := app.NewWindow("VR Club Timer — Settings")

	presets := widget.NewEntry()
	presets.SetText(formatIntList(settings.PresetMinutes))
	customMin := widget.NewEntry()
	customMin.SetText(strconv.Itoa(settings.DefaultCustomMinutes))
	thresholds := widget.NewEntry()
	thresholds.SetText(formatIntList(settings.WarningThresholds))
	buffer := widget.NewEntry()
	buffer.SetText(strconv.Itoa(int(settings.StartBuffer / time.Second)))
	delay := widget.NewEntry()
	delay.SetText(strconv.Itoa(int(settings.TerminateDelay / time.Second)))

	speech := widget.NewCheck("Voice announcements", nil)
	speech.SetChecked(settings.SpeechEnabled)
	autostart := widget.NewCheck("Launch on login", nil)
	autostart.SetChecked(settings.AutostartEnabled)

	gameName := widget.NewEntry()
	gameName.SetPlaceHolder("Game name")
	gameProcess := widget.NewEntry()
	gameProcess.SetPlaceHolder("Process name (e.g. game.exe)")
	gameList := container.NewVBox()
	status := widget.NewLabel("")

	sessionForm := container.NewVBox(
		widget.NewLabelWithStyle("Session", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Quick presets"), presets, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Default custom length"), customMin, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Warn at remaining"), thresholds, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Setup buffer"), buffer, widget.NewLabel("sec")),
		container.NewHBox(widget.NewLabel("Kill delay after finish"), delay, widget.NewLabel("sec")),
		speech,
		autostart,
	)

	prefs := &Window{
		window:      window,
		settings:    settings,
		games:       games,
		onSave:      onSave,
		onGames:     onGames,
		presets:     presets,
		customMin:   customMin,
		thresholds:  thresholds,
		buffer:      buffer,
		delay:       delay,
		speech:      speech,
		autostart:   autostart,
		gameName:    gameName,
		gameProcess: gameProcess,
		gameList:    gameList,
		status:      status,
	}

	addButton := widget.NewButton("Add", prefs.handleAddGame)
	gamesForm := container.NewVBox(
		widget.NewLabelWithStyle("Games", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, gameName, gameProcess, addButton),
		container.NewVScroll(gameList),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() { window.Hide() })
	buttons := container.NewHBox(status, layout.NewSpacer(), saveButton, cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil,
		container.NewVBox(sessionForm, widget.NewSeparator(), gamesForm))
	window.SetContent(content)
	window.Resize(fyne.NewSize(520, 560))
	window.SetCloseIntercept(func() { window.Hide() })

	prefs.RefreshGames()
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.presets.SetText(formatIntList(settings.PresetMinutes))
	prefs.customMin.SetText(strconv.Itoa(settings.DefaultCustomMinutes))
	prefs.thresholds.SetText(formatIntList(settings.WarningThresholds))
	prefs.buffer.SetText(strconv.Itoa(int(settings.StartBuffer / time.Second)))
	prefs.delay.SetText(strconv.Itoa(int(settings.TerminateDelay / time.Second)))
	prefs.speech.SetChecked(settings.SpeechEnabled)
	prefs.autostart.SetChecked(settings.AutostartEnabled)
}

// RefreshGames rebuilds the catalog list. Safe to call from the Fyne
// goroutine only; external callers marshal through fyne.Do.
func (prefs *Window) RefreshGames() {
	prefs.gameList.RemoveAll()
	for _, game := range prefs.games.Games() {
		name := game.Name
		row := container.NewHBox(
			widget.NewLabelWithStyle(game.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			widget.NewLabel(game.Process),
			layout.NewSpacer(),
			widget.NewButton("Remove", func() {
				if err := prefs.games.Remove(name); err != nil {
					prefs.status.SetText(err.Error())
					return
				}
				prefs.RefreshGames()
				if prefs.onGames != nil {
					prefs.onGames()
				}
			}),
		)
		prefs.gameList.Add(row)
	}
	prefs.gameList.Refresh()
}

func (prefs *Window) handleAddGame() {
	name := strings.TrimSpace(prefs.gameName.Text)
	process := strings.TrimSpace(prefs.gameProcess.Text)
	if err := prefs.games.Add(name, process); err != nil {
		prefs.status.SetText(err.Error())
		return
	}
	prefs.gameName.SetText("")
	prefs.gameProcess.SetText("")
	prefs.status.SetText(fmt.Sprintf("Added %s", name))
	prefs.RefreshGames()
	if prefs.onGames != nil {
		prefs.onGames()
	}
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if presets := parseIntList(prefs.presets.Text); len(presets) > 0 {
		settings.PresetMinutes = presets
	}
	if minutes, ok := parsePositiveInt(prefs.customMin.Text); ok {
		settings.DefaultCustomMinutes = minutes
	}
	settings.WarningThresholds = parseIntList(prefs.thresholds.Text)
	if seconds, ok := parseNonNegativeInt(prefs.buffer.Text); ok {
		settings.StartBuffer = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parseNonNegativeInt(prefs.delay.Text); ok {
		settings.TerminateDelay = time.Duration(seconds) * time.Second
	}
	settings.SpeechEnabled = prefs.speech.Checked
	settings.AutostartEnabled = prefs.autostart.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}

// parseIntList reads comma-separated positive integers, dropping
// anything unparsable.
func parseIntList(text string) []int {
	values := make([]int, 0, 4)
	for _, field := range strings.Split(text, ",") {
		if value, ok := parsePositiveInt(field); ok {
			values = append(values, value)
		}
	}
	return values
}

func formatIntList(values []int) string {
	fields := make([]string, 0, len(values))
	for _, value := range values {
		fields = append(fields, strconv.Itoa(value))
	}
	return strings.Join(fields, ", ")
}
