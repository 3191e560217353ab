package keymap

import "github.com/charmbracelet/bubbles/key"

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "score", "queue"
}

// Help returns the binding as a bubbles key binding for help rendering.
// The first key is shown.
func (b Binding) Help() key.Binding {
	shown := ""
	if len(b.Keys) > 0 {
		shown = b.Keys[0]
		if shown == " " {
			shown = "space"
		}
	}
	return key.NewBinding(key.WithKeys(b.Keys...), key.WithHelp(shown, b.Description))
}

// All contains all key bindings.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Toggle help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "space"}, "Play/pause", "playback"},
	{ActionStop, []string{"s"}, "Stop", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next (skip)", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous", "playback"},
	{ActionSeekForward, []string{"right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"left", "h"}, "Seek -5s", "playback"},

	// Score
	{ActionUpvote, []string{"+", "="}, "Upvote", "score"},
	{ActionDownvote, []string{"-"}, "Downvote", "score"},

	// Queue
	{ActionMoveDown, []string{"j", "down"}, "Move down", "queue"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "queue"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "queue"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "queue"},
	{ActionCurrent, []string{"."}, "Go to playing", "queue"},
	{ActionSelect, []string{"enter"}, "Play track", "queue"},
	{ActionToggleSelect, []string{"x"}, "Toggle selection", "queue"},
	{ActionClearSelect, []string{"esc"}, "Clear selection", "queue"},
	{ActionDelete, []string{"d", "delete"}, "Remove", "queue"},
	{ActionMoveItemDown, []string{"J", "shift+down"}, "Move item down", "queue"},
	{ActionMoveItemUp, []string{"K", "shift+up"}, "Move item up", "queue"},
	{ActionRefill, []string{"r"}, "Refill", "queue"},
	{ActionClearQueue, []string{"c"}, "Clear queue", "queue"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// HelpMap adapts bindings to bubbles/help.
type HelpMap struct {
	short []key.Binding
	full  [][]key.Binding
}

// NewHelpMap builds help for the given contexts, one column per context.
// The short help lists the first binding of each context.
func NewHelpMap(contexts ...string) HelpMap {
	var h HelpMap
	for _, c := range contexts {
		bindings := ByContext(c)
		if len(bindings) == 0 {
			continue
		}
		col := make([]key.Binding, 0, len(bindings))
		for _, b := range bindings {
			col = append(col, b.Help())
		}
		h.full = append(h.full, col)
		h.short = append(h.short, col[0])
	}
	return h
}

// ShortHelp implements help.KeyMap.
func (h HelpMap) ShortHelp() []key.Binding {
	return h.short
}

// FullHelp implements help.KeyMap.
func (h HelpMap) FullHelp() [][]key.Binding {
	return h.full
}
