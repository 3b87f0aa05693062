package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/audioguide/internal/navigation"
	"github.com/jask/audioguide/internal/progress"
	"github.com/jask/audioguide/internal/routing"
)

func (a *App) View() string {
	if a.loading {
		return fmt.Sprintf("\n  %s %s\n", a.spinner.View(), a.t("loading"))
	}
	if a.loadErr != nil {
		return a.renderLoadError()
	}

	st := a.nav.State()
	var body string
	switch st.Screen {
	case navigation.ScreenMap:
		body = a.renderMap(st)
	case navigation.ScreenFreeRoamPick:
		body = a.renderFreeRoamPick()
	case navigation.ScreenProgress:
		body = a.renderProgress()
	case navigation.ScreenSettings:
		body = a.renderSettings()
	default:
		body = a.renderTourSelect()
	}

	parts := []string{a.renderNav(st.Screen), body}
	if a.status != "" {
		parts = append(parts, a.theme.Status.Render(a.status))
	}
	parts = append(parts, a.renderFooter(renderHelp(a.keys.screenHelp(st.Screen))))
	return strings.Join(parts, "\n\n")
}

func (a *App) t(key string) string { return tr(a.settings.Language, key) }

func (a *App) renderLoadError() string {
	title := a.theme.Error.Render(a.t("load_failed"))
	return fmt.Sprintf("\n  %s\n\n  %s\n\n  %s\n", title, a.loadErr.Error(), renderHelp([]key.Binding{a.keys.Quit}))
}

func (a *App) renderNav(active navigation.Screen) string {
	items := []struct {
		screen navigation.Screen
		label  string
		key    string
	}{
		{navigation.ScreenTourSelect, a.t("tours"), "1"},
		{navigation.ScreenFreeRoamPick, a.t("free_roam"), "2"},
		{navigation.ScreenProgress, a.t("rewards"), "3"},
		{navigation.ScreenSettings, a.t("settings"), "4"},
		{navigation.ScreenMap, a.t("map"), "m"},
	}
	cells := make([]string, 0, len(items))
	for _, it := range items {
		label := it.key + " " + it.label
		if it.screen == active {
			cells = append(cells, a.theme.NavOn.Render(label))
		} else {
			cells = append(cells, a.theme.NavItem.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (a *App) renderFooter(text string) string {
	if a.width == 0 {
		return a.theme.Footer.Render(text)
	}
	return a.theme.Footer.Width(a.width).Render(text)
}

func (a *App) renderTourSelect() string {
	title := a.theme.Title.Render(a.t("tours"))
	tours := a.store.Tours()
	if len(tours) == 0 {
		return title + "\n" + a.theme.Muted.Render(a.t("no_tours"))
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	for i := range tours {
		t := &tours[i]
		line := fmt.Sprintf("%s  %d %s", t.Name, len(a.store.TourStops(t)), a.t("stops"))
		if l := routing.Path(t.Fallback).Length(); l > 0 {
			line += fmt.Sprintf(" · %s", formatDistance(l))
		}
		if a.progress.State().HasCompleted(t.ID) {
			line += " ✓"
		}
		if i == a.tourCursor {
			b.WriteString(a.theme.Selected.Render("> "+line) + "\n")
			if t.Description != "" {
				b.WriteString("  " + a.theme.Muted.Render(t.Description) + "\n")
			}
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) mapSize() (int, int) {
	w, h := 60, 16
	if a.width > 0 {
		w = max(a.width-4, 20)
	}
	if a.height > 0 {
		h = max(a.height-18, 8)
	}
	return w, h
}

func (a *App) renderMap(st navigation.State) string {
	title := a.t("map")
	switch {
	case st.OnTour():
		title += " · " + st.Tour.Name
	case st.FreeRoam:
		title += " · " + a.t("free_roam")
	}
	w, h := a.mapSize()
	canvas := drawMap(w, h, a.theme, a.store.Stops(), st, a.route.Path(), a.route.Source())

	parts := []string{
		a.theme.Title.Render(title),
		a.theme.Frame.Render(canvas),
		a.renderRouteLine(st),
	}
	if st.Stop != nil {
		parts = append(parts, a.renderStopCard(st))
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderRouteLine(st navigation.State) string {
	if !st.OnTour() {
		return ""
	}
	path := a.route.Path()
	switch {
	case a.route.Pending():
		return a.theme.Muted.Render(a.t("route_pending"))
	case a.route.Source() == routing.SourceComputed:
		return a.theme.PathComputed.Render(fmt.Sprintf("%s %s · %s", glyphPath, a.t("route_computed"), formatDistance(path.Length())))
	case a.route.Source() == routing.SourceFallback:
		return a.theme.PathFallback.Render(fmt.Sprintf("%s %s · %s", glyphPath, a.t("route_fallback"), formatDistance(path.Length())))
	default:
		return a.theme.Muted.Render(a.t("route_none"))
	}
}

func (a *App) renderStopCard(st navigation.State) string {
	s := st.Stop
	lines := []string{a.theme.Selected.Render(s.Name)}
	if s.Address != "" {
		lines = append(lines, a.theme.Muted.Render(s.Address))
	}
	if s.Description != "" {
		lines = append(lines, s.Description)
	}
	if s.AudioURL != "" {
		audio := fmt.Sprintf("♪ %s: %s", a.t("audio"), s.AudioURL)
		if a.settings.AutoPlayAudio {
			audio += " (" + a.t("autoplay") + ")"
		}
		lines = append(lines, audio)
	}
	if n, total := a.nav.Position(); total > 0 {
		pos := fmt.Sprintf(a.t("point_of"), n, total)
		if a.nav.HasNext() {
			pos += "  " + renderHelp([]key.Binding{a.keys.Next})
		}
		lines = append(lines, pos)
	}
	return a.theme.Card.Render(strings.Join(lines, "\n"))
}

func (a *App) renderFreeRoamPick() string {
	var b strings.Builder
	b.WriteString(a.theme.Title.Render(a.t("free_roam")) + "\n")
	b.WriteString(a.search.View() + "\n\n")
	if len(a.hits) == 0 {
		b.WriteString(a.theme.Muted.Render(a.t("no_stops")))
		return b.String()
	}
	visited := a.progress.State()
	for i, s := range a.hits {
		mark := " "
		if visited.HasVisited(s.ID) {
			mark = "✓"
		}
		line := fmt.Sprintf("%s %s  %s", mark, s.Name, a.theme.Muted.Render(s.Address))
		if i == a.pickCursor {
			b.WriteString(a.theme.Selected.Render("> ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderProgress() string {
	st := a.progress.State()
	var b strings.Builder
	b.WriteString(a.theme.Title.Render(a.t("rewards")) + "\n")
	b.WriteString(fmt.Sprintf("🏆 %s: %d   🔥 %s: %d %s   📍 %s: %d\n\n",
		a.t("points"), st.Points,
		a.t("streak"), st.Streak, a.t("days"),
		a.t("visited"), st.VisitedCount()))

	unlocked := progress.Unlocked(st, a.deps.Achievements)
	locked := progress.Locked(st, a.deps.Achievements)
	b.WriteString(fmt.Sprintf("%s (%d)\n", a.t("unlocked"), len(unlocked)))
	for _, ach := range unlocked {
		b.WriteString(a.theme.Unlocked.Render(fmt.Sprintf("  %s %s  +%d  ✓", ach.Icon, ach.Name, ach.Points)) + "\n")
		b.WriteString("    " + a.theme.Muted.Render(ach.Description) + "\n")
	}
	if len(locked) > 0 {
		b.WriteString(fmt.Sprintf("\n%s (%d)\n", a.t("locked"), len(locked)))
		for _, ach := range locked {
			b.WriteString(a.theme.Muted.Render(fmt.Sprintf("  %s %s  +%d  🔒", ach.Icon, ach.Name, ach.Points)) + "\n")
			b.WriteString("    " + a.theme.Muted.Render(ach.Description) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderSettings() string {
	onOff := func(v bool) string {
		if v {
			return a.t("on")
		}
		return a.t("off")
	}
	rows := [settingsRows][2]string{
		{a.t("notifications"), onOff(a.settings.Notifications)},
		{a.t("sound"), onOff(a.settings.SoundEffects)},
		{a.t("auto_play"), onOff(a.settings.AutoPlayAudio)},
		{a.t("language"), a.settings.Language},
		{a.t("theme"), a.settings.Theme},
	}
	var b strings.Builder
	b.WriteString(a.theme.Title.Render(a.t("settings")) + "\n")
	for i, r := range rows {
		line := fmt.Sprintf("%-28s %s", r[0], r[1])
		if i == a.settingsCursor {
			b.WriteString(a.theme.Selected.Render("> "+line) + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDistance(m float64) string {
	if m < 1000 {
		return fmt.Sprintf("%.0f m", m)
	}
	return fmt.Sprintf("%.1f km", m/1000)
}
