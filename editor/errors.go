package editor

import "errors"

var (
	// ErrChannelOutOfRange is returned for a channel index outside
	// [0, NumChannels()).
	ErrChannelOutOfRange = errors.New("editor: channel index out of range")

	// ErrChannelNotEditable is returned for an edit/undo/redo/domain
	// request against a channel beyond the 18-channel editable ceiling.
	ErrChannelNotEditable = errors.New("editor: channel is not editable")

	// ErrNoOriginalPath is returned by WriteFile when the editor was
	// created via CreateNewFile and has never been saved, so there is no
	// destination path to overwrite.
	ErrNoOriginalPath = errors.New("editor: no original file path; use WriteFileAs")

	// ErrUnsupportedDuration is returned by CreateNewFile for a duration
	// outside [MinNewFileSeconds, MaxNewFileSeconds].
	ErrUnsupportedDuration = errors.New("editor: unsupported new-file duration")
)
