package playback

import "image"

// Player is the playback collaborator: the video decode surface that
// owns the current frame. Implementations live outside this module;
// PatternPlayer is the in-repo stand-in.
type Player interface {
	// IsActive reports whether playback is running and frames are
	// available for capture.
	IsActive() bool

	// Play starts (or resumes) playback.
	Play()

	// CurrentPixels returns the current frame scaled to the requested
	// resolution. The returned image must not be retained across calls.
	CurrentPixels(width, height int) (image.Image, error)

	// FrameSize returns the native pixel dimensions of the source video.
	FrameSize() (width, height int)
}
