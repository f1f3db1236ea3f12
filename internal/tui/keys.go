package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding the board reacts to.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	HourBack  key.Binding
	HourFwd   key.Binding
	NextTask  key.Binding
	PrevDay   key.Binding
	NextDay   key.Binding
	PrevWeek  key.Binding
	NextWeek  key.Binding
	Today     key.Binding
	Week      key.Binding
	MoreDays  key.Binding
	LessDays  key.Binding
	Move      key.Binding
	ResizeBeg key.Binding
	ResizeEnd key.Binding
	Create    key.Binding
	Comment   key.Binding
	Start     key.Binding
	Pause     key.Binding
	Finish    key.Binding
	Details   key.Binding
	Copy      key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "back")),
		Right:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "forward")),
		HourBack:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "-1h")),
		HourFwd:   key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "+1h")),
		NextTask:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next task")),
		PrevDay:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		NextDay:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		PrevWeek:  key.NewBinding(key.WithKeys("{"), key.WithHelp("{", "prev week")),
		NextWeek:  key.NewBinding(key.WithKeys("}"), key.WithHelp("}", "next week")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Week:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week view")),
		MoreDays:  key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "more days")),
		LessDays:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer days")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		ResizeBeg: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "resize start")),
		ResizeEnd: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "resize end")),
		Create:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Comment:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		Start:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "start")),
		Pause:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Finish:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "finish")),
		Details:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindingSet adapts a fixed list of bindings to help.KeyMap.
type bindingSet struct {
	short []key.Binding
	full  [][]key.Binding
}

func (b bindingSet) ShortHelp() []key.Binding  { return b.short }
func (b bindingSet) FullHelp() [][]key.Binding { return b.full }

// helpFor returns the bindings shown in the footer for a mode.
func (k keyMap) helpFor(mode Mode) help.KeyMap {
	switch mode {
	case ModeRelocate:
		return bindingSet{
			short: []key.Binding{k.Left, k.Right, k.Up, k.Down, k.PrevDay, k.NextDay, k.Confirm, k.Cancel},
			full: [][]key.Binding{
				{k.Left, k.Right, k.HourBack, k.HourFwd},
				{k.Up, k.Down, k.PrevDay, k.NextDay},
				{k.Confirm, k.Cancel},
			},
		}
	case ModeResize:
		return bindingSet{
			short: []key.Binding{k.Left, k.Right, k.HourBack, k.HourFwd, k.Confirm, k.Cancel},
			full: [][]key.Binding{
				{k.Left, k.Right, k.HourBack, k.HourFwd},
				{k.Confirm, k.Cancel},
			},
		}
	case ModePrompt:
		return bindingSet{short: []key.Binding{k.Confirm, k.Cancel}}
	case ModeModal:
		return bindingSet{short: []key.Binding{k.Confirm, k.Copy, k.Cancel}}
	default:
		return bindingSet{
			short: []key.Binding{k.Move, k.ResizeBeg, k.ResizeEnd, k.Create, k.Start, k.Finish, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.Left, k.Right, k.NextTask},
				{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today, k.Week, k.MoreDays, k.LessDays},
				{k.Move, k.ResizeBeg, k.ResizeEnd, k.Create, k.Details},
				{k.Start, k.Pause, k.Finish, k.Comment, k.Copy},
				{k.Help, k.Quit},
			},
		}
	}
}
