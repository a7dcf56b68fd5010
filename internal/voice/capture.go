package voice

import "context"

// Capture is the platform audio-capture port. Acquire is permission
// gated and may fail with an access-denial error.
type Capture interface {
	Acquire(ctx context.Context) (Handle, error)
}

// Handle is the owned session resource held only during active
// listening. It must be released on every exit path from the listening
// state.
type Handle interface {
	Release()
}

// RemoteCapture is the capture device of the web deployment: the
// connected browser owns the physical microphone and reports its own
// permission failures before opening a session, so server-side
// acquisition always succeeds. Release marks the stream relinquished.
type RemoteCapture struct{}

func (RemoteCapture) Acquire(context.Context) (Handle, error) {
	return &remoteHandle{}, nil
}

type remoteHandle struct {
	released bool
}

func (h *remoteHandle) Release() {
	h.released = true
}
