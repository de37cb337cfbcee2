package dashboard

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	Sleep     key.Binding
	Wake      key.Binding
	Skip      key.Binding
	Reminders key.Binding
	Mode      key.Binding
	Earlier   key.Binding
	Later     key.Binding
	Tip       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Sleep:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "going to sleep")),
		Wake:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "woke up")),
		Skip:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "skip 15 min")),
		Reminders: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reminders on/off")),
		Mode:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "plan bedtime/wake")),
		Earlier:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "-15 min")),
		Later:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "+15 min")),
		Tip:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tip")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Sleep, k.Wake, k.Skip, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sleep, k.Wake, k.Skip, k.Reminders},
		{k.Mode, k.Earlier, k.Later},
		{k.Tip, k.Help, k.Quit},
	}
}

// moodKeys pick a mood after waking up; enter skips it.
var moodKeys = map[string]string{
	"1": "refreshed",
	"2": "okay",
	"3": "tired",
}
