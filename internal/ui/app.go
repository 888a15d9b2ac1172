// Package ui renders the Bubble Tea application UI.
package ui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/ethercheck/ethercheck/internal/devtools"
	"github.com/ethercheck/ethercheck/internal/monitor"
	"github.com/ethercheck/ethercheck/internal/ui/components/errorpopup"
	"github.com/ethercheck/ethercheck/internal/ui/components/navbar"
	"github.com/ethercheck/ethercheck/internal/ui/components/statusbar"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/help"
	"github.com/ethercheck/ethercheck/internal/ui/dialogs/timerange"
	"github.com/ethercheck/ethercheck/internal/ui/theme"
	"github.com/ethercheck/ethercheck/internal/ui/views"
)

// statusTimeout is how long a status message stays on screen.
const statusTimeout = 3 * time.Second

// tickMsg is sent on every refresh interval.
type tickMsg time.Time

// clearStatusMsg drops the status message it was scheduled for.
type clearStatusMsg struct {
	seq int
}

// Options configures the application.
type Options struct {
	Context    context.Context
	Location   *time.Location
	Logger     logrus.FieldLogger
	Tracker    *devtools.Tracker
	Controls   monitor.Controls
	Refresh    time.Duration
	Timeout    time.Duration
	CellWidth  float64
	CellHeight float64
	ExportDir  string
}

// App is the main application model.
type App struct {
	keys       KeyMap
	width      int
	height     int
	ready      bool
	activeView int
	views      []views.View
	graph      *views.Graph
	statusbar  statusbar.Model
	navbar     navbar.Model
	errorPopup errorpopup.Model
	dialogs    dialogs.Stack
	styles     theme.Styles

	client    monitor.API
	ctx       context.Context
	log       logrus.FieldLogger
	controls  monitor.Controls
	refresh   time.Duration
	timeout   time.Duration
	statusSeq int
}

// New creates a new App instance.
func New(client monitor.API, opts Options) App {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = views.DefaultTimeout
	}
	if opts.Controls.Start.IsZero() {
		opts.Controls = monitor.NewControls(time.Now().In(opts.Location))
	}

	styles := theme.NewStyles()

	graph := views.NewGraph(client,
		views.WithContext(opts.Context),
		views.WithLocation(opts.Location),
		views.WithTimeout(opts.Timeout),
		views.WithCellSize(opts.CellWidth, opts.CellHeight),
		views.WithExportDir(opts.ExportDir),
		views.WithLogger(opts.Logger),
	)
	viewList := []views.View{
		graph,
		views.NewRooms(opts.Location),
		views.NewResponse(),
		views.NewRequests(opts.Tracker),
	}

	// Apply styles to views
	viewStyles := views.Styles{
		Text:            styles.ViewText,
		Muted:           styles.ViewMuted,
		Title:           styles.ViewTitle,
		MetricLabel:     styles.MetricLabel,
		MetricValue:     styles.MetricValue,
		TableHeader:     styles.TableHeader,
		TableSelected:   styles.TableSelected,
		TableSeparator:  styles.TableSeparator,
		BorderStyle:     styles.BorderStyle,
		FocusBorder:     styles.FocusBorder,
		FilterFocused:   styles.FilterFocused,
		FilterBlurred:   styles.FilterBlurred,
		ScrollbarTrack:  styles.ScrollbarTrack,
		ScrollbarThumb:  styles.ScrollbarThumb,
		ChartAxis:       styles.ChartAxis,
		ChartLabel:      styles.ChartLabel,
		ChartTooltip:    styles.ChartTooltip,
		Error:           styles.ChartFailure,
		JSONKey:         styles.JSONKey,
		JSONString:      styles.JSONString,
		JSONNumber:      styles.JSONNumber,
		JSONBool:        styles.JSONBool,
		JSONNull:        styles.JSONNull,
		JSONPunctuation: styles.JSONPunctuation,
	}
	for i := range viewList {
		viewList[i] = viewList[i].SetStyles(viewStyles)
		viewList[i], _ = viewList[i].Update(views.ControlsMsg{Controls: opts.Controls})
	}

	names := lo.Map(viewList, func(v views.View, _ int) string { return v.Name() })
	navViews := lo.Map(names, func(name string, _ int) navbar.ViewInfo { return navbar.ViewInfo{Name: name} })
	keys := NewKeyMap(names...)
	return App{
		keys:       keys,
		activeView: 0,
		views:      viewList,
		graph:      graph,
		statusbar: statusbar.New(
			statusbar.WithStyles(statusbar.Styles{
				Bar:       styles.StatusBar,
				Label:     styles.StatusLabel,
				Value:     styles.StatusValue,
				Separator: styles.StatusSep,
			}),
		),
		navbar: navbar.New(
			navbar.WithStyles(navbar.Styles{
				Bar:    styles.NavBar,
				Key:    styles.NavKey,
				Item:   styles.NavItem,
				Active: styles.NavActive,
				Quit:   styles.NavQuit,
				Brand:  styles.ViewMuted,
			}),
			navbar.WithViews(navViews),
			navbar.WithBrand("ethercheck"),
			navbar.WithHelp(keys.Help),
		),
		errorPopup: errorpopup.New(
			errorpopup.WithStyles(errorpopup.Styles{
				Title:   styles.ErrorTitle,
				Message: styles.ViewMuted,
				Border:  styles.ErrorBorder,
			}),
		),
		dialogs:  dialogs.NewStack(),
		styles:   styles,
		client:   client,
		ctx:      opts.Context,
		log:      opts.Logger,
		controls: opts.Controls,
		refresh:  opts.Refresh,
		timeout:  opts.Timeout,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.views)+2)
	for _, v := range a.views {
		cmds = append(cmds, v.Init())
	}
	cmds = append(cmds,
		a.loadRoomsCmd(),
		a.tickCmd(),
	)
	return tea.Batch(cmds...)
}

// tickCmd schedules the next refresh. A non-positive interval disables it.
func (a App) tickCmd() tea.Cmd {
	if a.refresh <= 0 {
		return nil
	}
	return tea.Tick(a.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadRoomsCmd fetches the room list. Failures fall back to the built-in list.
func (a App) loadRoomsCmd() tea.Cmd {
	client, parent, timeout := a.client, a.ctx, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(devtools.WithTracker(parent, "rooms.load"), timeout)
		defer cancel()
		rooms, err := monitor.LoadRooms(ctx, client)
		return views.RoomsLoadedMsg{Rooms: rooms, Err: err}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		a.controls = a.controls.Refreshed(time.Time(msg))
		cmds = append(cmds,
			a.broadcast(views.ControlsMsg{Controls: a.controls}),
			a.broadcast(views.RefreshMsg{}),
			a.tickCmd(),
		)

	case views.RoomsLoadedMsg:
		if msg.Err != nil {
			a.log.WithError(msg.Err).WithField("rooms", msg.Rooms).Warn("room list unavailable, using fallback")
		} else {
			a.log.WithField("count", len(msg.Rooms)).Debug("rooms loaded")
		}
		a.controls = a.controls.WithRooms(msg.Rooms)
		cmds = append(cmds,
			a.broadcast(views.ControlsMsg{Controls: a.controls}),
			a.broadcast(msg),
			a.broadcast(views.BuildMsg{}),
		)

	case views.ToggleRoomMsg:
		a.controls.Selection = a.controls.Selection.Toggle(msg.Value)
		cmds = append(cmds, a.selectionChanged())

	case views.ToggleSummaryMsg:
		if a.controls.Selection.Summary {
			a.controls.Selection = monitor.DefaultSelection()
		} else {
			a.controls.Selection = a.controls.Selection.Toggle(monitor.SummaryID)
		}
		cmds = append(cmds, a.selectionChanged())

	case views.ClearRoomsMsg:
		a.controls.Selection = a.controls.Selection.Clear()
		cmds = append(cmds, a.selectionChanged())

	case views.PresetMsg:
		controls, err := a.controls.WithPreset(msg.Key, time.Now())
		if err != nil {
			a.showError("Invalid range", err)
			break
		}
		a.controls = controls
		cmds = append(cmds, a.broadcast(views.ControlsMsg{Controls: a.controls}))

	case timerange.RangeMsg:
		a.controls = a.controls.WithRange(msg.Start, msg.End)
		cmds = append(cmds,
			a.broadcast(views.ControlsMsg{Controls: a.controls}),
			a.broadcast(views.BuildMsg{}),
		)

	case views.ErrorMsg:
		a.showError(msg.Title, msg.Err)

	case views.StatusMsg:
		a.statusSeq++
		a.statusbar.SetMessage(msg.Text)
		seq := a.statusSeq
		cmds = append(cmds, tea.Tick(statusTimeout, func(time.Time) tea.Msg {
			return clearStatusMsg{seq: seq}
		}))

	case clearStatusMsg:
		if msg.seq == a.statusSeq {
			a.statusbar.SetMessage("")
		}

	case dialogs.OpenDialogMsg, dialogs.CloseDialogMsg:
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		cmd := a.handleKey(msg)
		return a, cmd

	case tea.MouseMsg:
		if a.errorPopup.HasError() {
			return a, nil
		}
		if a.dialogs.HasDialogs() {
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			return a, cmd
		}
		translated, ok := translateMouse(msg, -a.statusbar.Height())
		if !ok {
			return a, nil
		}
		updatedView, cmd := a.views[a.activeView].Update(translated)
		a.views[a.activeView] = updatedView
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

		// Update component dimensions
		a.statusbar.SetWidth(msg.Width)
		a.navbar.SetWidth(msg.Width)

		// Calculate content size (total - statusbar - navbar)
		contentHeight := max(msg.Height-a.statusbar.Height()-a.navbar.Height(), 0)
		contentWidth := msg.Width
		for i := range a.views {
			a.views[i] = a.views[i].SetSize(contentWidth, contentHeight)
		}
		a.errorPopup.SetSize(contentWidth, contentHeight)

		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		cmds = append(cmds, cmd)

	default:
		// Graph results, spinner ticks and other async messages reach every
		// view; the active dialog sees them too.
		cmds = append(cmds, a.broadcast(msg))
		if a.dialogs.HasDialogs() {
			var cmd tea.Cmd
			a.dialogs, cmd = a.dialogs.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	// The error popup is modal: only dismiss and quit keys work.
	if a.errorPopup.HasError() {
		var consumed bool
		a.errorPopup, consumed = a.errorPopup.Update(msg)
		if !consumed && key.Matches(msg, a.keys.Quit) {
			return tea.Quit
		}
		return nil
	}

	if a.dialogs.HasDialogs() {
		if msg.String() == "ctrl+c" {
			return tea.Quit
		}
		var cmd tea.Cmd
		a.dialogs, cmd = a.dialogs.Update(msg)
		return cmd
	}

	if view, ok := a.views[a.activeView].(interface{ FilterFocused() bool }); ok && view.FilterFocused() {
		updatedView, cmd := a.views[a.activeView].Update(msg)
		a.views[a.activeView] = updatedView
		return cmd
	}

	// Handle global keybindings first
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.Help):
		return a.openHelp()
	case key.Matches(msg, a.keys.Next):
		return a.switchView((a.activeView + 1) % len(a.views))
	case key.Matches(msg, a.keys.Prev):
		return a.switchView((a.activeView - 1 + len(a.views)) % len(a.views))
	}
	for i, binding := range a.keys.Views {
		if i < len(a.views) && key.Matches(msg, binding) {
			return a.switchView(i)
		}
	}

	// Pass to active view
	updatedView, cmd := a.views[a.activeView].Update(msg)
	a.views[a.activeView] = updatedView
	return cmd
}

func (a *App) switchView(index int) tea.Cmd {
	a.activeView = index
	a.navbar.SetActive(index)
	return a.views[index].Init()
}

// broadcast delivers msg to every view, not just the active one.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(a.views))
	for i := range a.views {
		updatedView, cmd := a.views[i].Update(msg)
		a.views[i] = updatedView
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// selectionChanged publishes a new room selection. The graph on screen no
// longer matches it and is dropped.
func (a *App) selectionChanged() tea.Cmd {
	return tea.Batch(
		a.broadcast(views.ControlsMsg{Controls: a.controls}),
		a.broadcast(views.ClearGraphMsg{}),
	)
}

func (a *App) showError(title string, err error) {
	if err == nil {
		return
	}
	a.log.WithError(err).WithField("component", "ui").Error(title)
	a.errorPopup.Show(title, err)
}

func (a *App) openHelp() tea.Cmd {
	var sections []help.Section
	if provider, ok := a.views[a.activeView].(views.HelpProvider); ok {
		sections = append(sections, provider.HelpSections()...)
	}
	sections = append(sections, help.Section{
		Title:    "Global",
		Bindings: a.keys.Global(),
	})
	model := help.New(
		help.WithStyles(help.Styles{
			Title:   a.styles.ViewTitle,
			Border:  a.styles.FocusBorder,
			Section: a.styles.MetricLabel,
			Key:     a.styles.MetricValue,
			Desc:    a.styles.ViewText,
			Muted:   a.styles.ViewMuted,
		}),
		help.WithSections(sections),
	)
	return func() tea.Msg { return dialogs.OpenDialogMsg{Model: model} }
}

// translateMouse shifts a mouse event vertically into view coordinates.
func translateMouse(msg tea.MouseMsg, dy int) (tea.Msg, bool) {
	mouse := msg.Mouse()
	mouse.Y += dy
	if mouse.Y < 0 {
		return nil, false
	}
	switch msg.(type) {
	case tea.MouseClickMsg:
		return tea.MouseClickMsg(mouse), true
	case tea.MouseReleaseMsg:
		return tea.MouseReleaseMsg(mouse), true
	case tea.MouseWheelMsg:
		return tea.MouseWheelMsg(mouse), true
	case tea.MouseMotionMsg:
		return tea.MouseMotionMsg(mouse), true
	}
	return nil, false
}

func (a App) statusData() statusbar.Data {
	state := a.graph.State()
	return statusbar.Data{
		API:       a.client.DisplayURL(),
		Range:     a.controls.RangeLabel(),
		Selection: a.controls.Selection.String(),
		Series:    len(state.Rendered()),
		Loading:   a.graph.Loading(),
	}
}

// View implements tea.Model.
func (a App) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion

	if !a.ready {
		v.SetContent("Initializing...")
		return v
	}

	content := a.views[a.activeView].View()
	if a.errorPopup.HasError() {
		content = a.errorPopup.Overlay(content)
	}

	a.statusbar.SetData(a.statusData())

	// Build the layout: status bar (top) + content (middle) + navbar (bottom)
	screen := lipgloss.JoinVertical(
		lipgloss.Left,
		a.statusbar.View(),
		content,
		a.navbar.View(),
	)
	if a.dialogs.HasDialogs() {
		screen = a.dialogs.Overlay(screen)
	}
	v.SetContent(screen)

	return v
}
