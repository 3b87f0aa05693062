package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/jask/audioguide/internal/navigation"
)

type keyMap struct {
	Tours    key.Binding
	FreeRoam key.Binding
	Progress key.Binding
	Settings key.Binding
	Map      key.Binding
	Quit     key.Binding
	UpDown   key.Binding
	Enter    key.Binding
	Close    key.Binding
	Next     key.Binding
	PrevStop key.Binding
	NextStop key.Binding
	Search   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Tours:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "tours")),
		FreeRoam: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "free roam")),
		Progress: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "rewards")),
		Settings: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "settings")),
		Map:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		UpDown:   key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "select")),
		Enter:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next point")),
		PrevStop: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev stop")),
		NextStop: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next stop")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	}
}

// screenHelp lists the bindings shown in the footer for screen.
func (k keyMap) screenHelp(screen navigation.Screen) []key.Binding {
	switch screen {
	case navigation.ScreenTourSelect:
		return []key.Binding{k.UpDown, k.Enter, k.FreeRoam, k.Progress, k.Settings, k.Quit}
	case navigation.ScreenMap:
		return []key.Binding{k.Next, k.PrevStop, k.NextStop, k.Close, k.Tours, k.Quit}
	case navigation.ScreenFreeRoamPick:
		return []key.Binding{k.Search, k.UpDown, k.Enter, k.Tours, k.Quit}
	case navigation.ScreenSettings:
		return []key.Binding{k.UpDown, k.Enter, k.Tours, k.Quit}
	default:
		return []key.Binding{k.Tours, k.Map, k.Quit}
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tours, k.FreeRoam, k.Progress, k.Settings, k.Map, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.UpDown, k.Enter, k.Close, k.Next, k.PrevStop, k.NextStop, k.Search},
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}
