package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	left     key.Binding
	right    key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	search   key.Binding
	home     key.Binding
	genres   key.Binding
	trending key.Binding
	profile  key.Binding
	signIn   key.Binding
	signUp   key.Binding
	signOut  key.Binding
	prevRow  key.Binding
	nextRow  key.Binding
	sort     key.Binding
	filter   key.Binding
	layout   key.Binding
	jump     key.Binding
	open     key.Binding
	switchTo key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch pane")),
		search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		home:     key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		genres:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genres")),
		trending: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "trending")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		signIn:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "sign in")),
		signUp:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "sign up")),
		signOut:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sign out")),
		prevRow:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev genre")),
		nextRow:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next genre")),
		sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "genre filter")),
		layout:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		jump:     key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "jump to genre")),
		open:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "open in browser")),
		switchTo: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "switch form")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.search, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right, k.enter, k.back},
		{k.home, k.genres, k.trending, k.profile},
		{k.signIn, k.signUp, k.signOut, k.search},
		{k.sort, k.filter, k.layout, k.jump, k.open, k.quit},
	}
}
