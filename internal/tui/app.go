package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/audioguide/internal/catalog"
	"github.com/jask/audioguide/internal/config"
	"github.com/jask/audioguide/internal/navigation"
	"github.com/jask/audioguide/internal/progress"
	"github.com/jask/audioguide/internal/routing"
)

// App ties together views. All engine state is mutated from Update only;
// commands hand their results back as messages.
type App struct {
	ctx  context.Context
	cfg  config.Config
	deps Deps
	log  *slog.Logger

	store    *catalog.Store
	nav      *navigation.Controller
	progress *progress.Tracker
	route    *routing.Synchronizer

	loading  bool
	loadErr  error
	spinner  spinner.Model
	search   textinput.Model
	keys     keyMap
	theme    theme
	settings settings

	width          int
	height         int
	tourCursor     int
	pickCursor     int
	settingsCursor int
	hits           []catalog.Stop
	status         string
}

type Deps struct {
	Source       catalog.Source
	Route        *routing.Synchronizer
	Achievements []progress.Achievement
	Log          *slog.Logger
}

// settings are session-only presentation toggles.
type settings struct {
	Notifications bool
	SoundEffects  bool
	AutoPlayAudio bool
	Language      string
	Theme         string
}

const settingsRows = 5

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	route := deps.Route
	if route == nil {
		route = routing.NewSynchronizer(nil, 0, log)
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	st := settings{
		Notifications: true,
		SoundEffects:  true,
		AutoPlayAudio: cfg.UI.AutoPlayAudio,
		Language:      cfg.UI.Language,
		Theme:         cfg.UI.Theme,
	}
	ti := textinput.New()
	ti.Placeholder = tr(st.Language, "search_hint")
	ti.CharLimit = 64

	return &App{
		ctx:      ctx,
		cfg:      cfg,
		deps:     deps,
		log:      log,
		route:    route,
		loading:  true,
		spinner:  sp,
		search:   ti,
		keys:     newKeyMap(),
		theme:    newTheme(st.Theme),
		settings: st,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCatalog())
}

func (a *App) loadCatalog() tea.Cmd {
	ctx, src := a.ctx, a.deps.Source
	return func() tea.Msg {
		if src == nil {
			return catalogLoadedMsg{err: errors.New("no catalog source configured")}
		}
		stops, tours, err := src.Load(ctx)
		if err != nil {
			return catalogLoadedMsg{err: err}
		}
		return catalogLoadedMsg{store: catalog.NewStore(stops, tours)}
	}
}

// resolveRoute runs the provider off the event loop.
func (a *App) resolveRoute(req routing.Request) tea.Cmd {
	ctx, route := a.ctx, a.route
	return func() tea.Msg {
		return routeResolvedMsg{result: route.Resolve(ctx, req)}
	}
}

// syncRoute hands the current waypoints to the synchronizer and dispatches
// a computation when they changed.
func (a *App) syncRoute() tea.Cmd {
	if a.nav == nil {
		return nil
	}
	st := a.nav.State()
	req := a.route.Sync(navigation.Waypoints(st, a.store), navigation.Fallback(st))
	if req == nil {
		return nil
	}
	return a.resolveRoute(*req)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case catalogLoadedMsg:
		a.loading = false
		if m.err != nil {
			a.loadErr = m.err
			a.log.Error("catalog load failed", "err", m.err)
			return a, nil
		}
		a.ready(m.store)
	case routeResolvedMsg:
		if a.route.Apply(m.result) {
			a.log.Debug("route applied", "source", a.route.Source(), "points", len(a.route.Path()))
		}
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

func (a *App) ready(store *catalog.Store) {
	a.store = store
	a.progress = progress.NewTracker(store, a.cfg.Progress.PointsPerVisit, a.log)
	a.nav = navigation.NewController(store, a.progress, a.log)
	a.log.Info("catalog loaded", "stops", len(store.Stops()), "tours", len(store.Tours()))
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.String() == "ctrl+c" {
		return a, tea.Quit
	}
	if a.nav == nil {
		// loading or failed: quitting is the only way out
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}
	before := a.progress.State()
	cmd := a.dispatchKey(m)
	a.announce(before)
	return a, tea.Batch(cmd, a.syncRoute())
}

func (a *App) dispatchKey(m tea.KeyMsg) tea.Cmd {
	screen := a.nav.State().Screen
	if screen == navigation.ScreenFreeRoamPick && a.search.Focused() {
		return a.handleSearchKey(m)
	}
	switch {
	case key.Matches(m, a.keys.Quit):
		return tea.Quit
	case key.Matches(m, a.keys.Tours):
		a.nav.NavigateTo(navigation.ScreenTourSelect)
		return nil
	case key.Matches(m, a.keys.FreeRoam):
		return a.openFreeRoamPick()
	case key.Matches(m, a.keys.Progress):
		a.nav.NavigateTo(navigation.ScreenProgress)
		return nil
	case key.Matches(m, a.keys.Settings):
		a.nav.NavigateTo(navigation.ScreenSettings)
		return nil
	case key.Matches(m, a.keys.Map):
		a.nav.NavigateTo(navigation.ScreenMap)
		return nil
	}
	switch screen {
	case navigation.ScreenTourSelect:
		a.handleTourSelectKey(m)
	case navigation.ScreenMap:
		a.handleMapKey(m)
	case navigation.ScreenFreeRoamPick:
		return a.handlePickKey(m)
	case navigation.ScreenSettings:
		a.handleSettingsKey(m)
	}
	return nil
}

func (a *App) handleTourSelectKey(m tea.KeyMsg) {
	tours := a.store.Tours()
	switch {
	case key.Matches(m, a.keys.UpDown):
		a.tourCursor = moveCursor(a.tourCursor, direction(m), len(tours))
	case key.Matches(m, a.keys.Enter):
		if a.tourCursor < len(tours) {
			a.nav.SelectTour(a.store.Tour(tours[a.tourCursor].ID))
		}
	}
}

func (a *App) handleMapKey(m tea.KeyMsg) {
	switch {
	case key.Matches(m, a.keys.Next):
		a.nav.Advance()
	case key.Matches(m, a.keys.PrevStop):
		a.cycleStop(-1)
	case key.Matches(m, a.keys.NextStop):
		a.cycleStop(1)
	case key.Matches(m, a.keys.Close):
		a.nav.CloseStopCard()
	}
}

// cycleStop selects the neighbour of the selected stop in catalog order,
// standing in for clicking a stop on the map.
func (a *App) cycleStop(dir int) {
	stops := a.store.Stops()
	if len(stops) == 0 {
		return
	}
	next := 0
	if dir < 0 {
		next = len(stops) - 1
	}
	if cur := a.nav.State().Stop; cur != nil {
		for i, s := range stops {
			if s.ID == cur.ID {
				next = (i + dir + len(stops)) % len(stops)
				break
			}
		}
	}
	a.nav.SelectStop(a.store.Stop(stops[next].ID))
}

func (a *App) openFreeRoamPick() tea.Cmd {
	a.nav.NavigateTo(navigation.ScreenFreeRoamPick)
	a.search.SetValue("")
	a.refreshHits()
	return a.search.Focus()
}

func (a *App) refreshHits() {
	a.hits = a.store.Search(a.search.Value())
	if a.pickCursor >= len(a.hits) {
		a.pickCursor = 0
	}
}

func (a *App) handleSearchKey(m tea.KeyMsg) tea.Cmd {
	switch m.String() {
	case "esc", "enter":
		a.search.Blur()
		return nil
	case "up", "down":
		a.pickCursor = moveCursor(a.pickCursor, direction(m), len(a.hits))
		return nil
	}
	var cmd tea.Cmd
	a.search, cmd = a.search.Update(m)
	a.refreshHits()
	return cmd
}

func (a *App) handlePickKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, a.keys.Search):
		return a.search.Focus()
	case key.Matches(m, a.keys.UpDown):
		a.pickCursor = moveCursor(a.pickCursor, direction(m), len(a.hits))
	case key.Matches(m, a.keys.Enter):
		if a.pickCursor < len(a.hits) {
			a.nav.StartFreeRoam(a.store.Stop(a.hits[a.pickCursor].ID))
		}
	case key.Matches(m, a.keys.Close):
		a.nav.NavigateTo(navigation.ScreenTourSelect)
	}
	return nil
}

func (a *App) handleSettingsKey(m tea.KeyMsg) {
	switch {
	case key.Matches(m, a.keys.UpDown):
		a.settingsCursor = moveCursor(a.settingsCursor, direction(m), settingsRows)
	case key.Matches(m, a.keys.Enter):
		a.toggleSetting(a.settingsCursor)
	}
}

func (a *App) toggleSetting(row int) {
	switch row {
	case 0:
		a.settings.Notifications = !a.settings.Notifications
	case 1:
		a.settings.SoundEffects = !a.settings.SoundEffects
	case 2:
		a.settings.AutoPlayAudio = !a.settings.AutoPlayAudio
	case 3:
		if a.settings.Language == "ru" {
			a.settings.Language = "en"
		} else {
			a.settings.Language = "ru"
		}
		a.search.Placeholder = tr(a.settings.Language, "search_hint")
	case 4:
		a.settings.Theme = cycle([]string{"light", "dark", "auto"}, a.settings.Theme)
		a.theme = newTheme(a.settings.Theme)
	}
}

// announce surfaces achievements crossed since before.
func (a *App) announce(before progress.State) {
	newly := progress.NewlyUnlocked(before, a.progress.State(), a.deps.Achievements)
	if len(newly) == 0 {
		return
	}
	names := make([]string, 0, len(newly))
	for _, ach := range newly {
		names = append(names, ach.Icon+" "+ach.Name)
		a.log.Info("achievement unlocked", "id", ach.ID)
	}
	if a.settings.Notifications {
		a.status = tr(a.settings.Language, "new_reward") + ": " + strings.Join(names, ", ")
	}
}

func direction(m tea.KeyMsg) int {
	switch m.String() {
	case "up", "k":
		return -1
	default:
		return 1
	}
}

func moveCursor(cur, dir, n int) int {
	if n == 0 {
		return 0
	}
	cur += dir
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func cycle(values []string, cur string) string {
	for i, v := range values {
		if v == cur {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

type catalogLoadedMsg struct {
	store *catalog.Store
	err   error
}

type routeResolvedMsg struct {
	result routing.Result
}
