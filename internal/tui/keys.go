package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	search    key.Binding
	provider  key.Binding
	category  key.Binding
	sidebar   key.Binding
	reload    key.Binding
	batch     key.Binding
	validate  key.Binding
	clear     key.Binding
	submit    key.Binding
	toggle    key.Binding
	copy      key.Binding
	add       key.Binding
	delete    key.Binding
	importCSV key.Binding
	generate  key.Binding
	cancel    key.Binding
	reset     key.Binding
	format    key.Binding
	export    key.Binding
	edit      key.Binding
	csvTmpl   key.Binding
	version   key.Binding
	recent    key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	left:      key.NewBinding(key.WithKeys("left")),
	right:     key.NewBinding(key.WithKeys("right")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("L")),
	search:    key.NewBinding(key.WithKeys("/")),
	provider:  key.NewBinding(key.WithKeys("p")),
	category:  key.NewBinding(key.WithKeys("c")),
	sidebar:   key.NewBinding(key.WithKeys("s")),
	reload:    key.NewBinding(key.WithKeys("r")),
	batch:     key.NewBinding(key.WithKeys("b")),
	validate:  key.NewBinding(key.WithKeys("v")),
	clear:     key.NewBinding(key.WithKeys("x")),
	submit:    key.NewBinding(key.WithKeys("ctrl+s")),
	toggle:    key.NewBinding(key.WithKeys(" ")),
	copy:      key.NewBinding(key.WithKeys("ctrl+y")),
	add:       key.NewBinding(key.WithKeys("a")),
	delete:    key.NewBinding(key.WithKeys("d")),
	importCSV: key.NewBinding(key.WithKeys("i")),
	generate:  key.NewBinding(key.WithKeys("g")),
	cancel:    key.NewBinding(key.WithKeys("x")),
	reset:     key.NewBinding(key.WithKeys("r")),
	format:    key.NewBinding(key.WithKeys("f")),
	export:    key.NewBinding(key.WithKeys("e")),
	edit:      key.NewBinding(key.WithKeys("e")),
	csvTmpl:   key.NewBinding(key.WithKeys("t")),
	version:   key.NewBinding(key.WithKeys("?")),
	recent:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5")),
}
