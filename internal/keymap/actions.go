// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause   Action = "play_pause"
	ActionStop        Action = "stop"
	ActionNextTrack   Action = "next_track"
	ActionPrevTrack   Action = "prev_track"
	ActionSeekForward Action = "seek_forward"
	ActionSeekBack    Action = "seek_back"

	// Score actions
	ActionUpvote   Action = "upvote"
	ActionDownvote Action = "downvote"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionCurrent   Action = "jump_current"

	// Queue actions
	ActionSelect       Action = "select"        // enter - play track under cursor
	ActionDelete       Action = "delete"        // d/delete - remove selected or cursor
	ActionToggleSelect Action = "toggle_select" // x
	ActionClearSelect  Action = "clear_select"  // esc
	ActionMoveItemUp   Action = "move_item_up"  // K
	ActionMoveItemDown Action = "move_item_down"
	ActionRefill       Action = "refill" // r - top up the lookahead
	ActionClearQueue   Action = "clear_queue"
)
