package camera

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/jpeg"
	"sync"
)

// Gate lifecycle errors
var (
	ErrGateNotOpen   = errors.New("capture gate is not open")
	ErrNothingToShow = errors.New("no frame has been captured yet")
)

const captureQuality = 80 // JPEG quality, matches the 0.8 encoder setting of the web client

// Gate is the scoped capture resource. Open acquires the camera,
// Capture freezes a frame, Confirm hands the encoded photo to the
// caller, Retake returns to live preview, and Close releases the
// stream. Close must run on every exit path, including errors and
// teardown, so the device never leaks.
type Gate struct {
	mu       sync.Mutex
	device   Device
	stream   Stream
	captured string
}

// NewGate wraps a device. A nil device means the kiosk has no camera;
// Open will fail with ErrUnsupported before any acquisition attempt.
func NewGate(device Device) *Gate {
	return &Gate{device: device}
}

// Open acquires the camera stream. Reopening an open gate is an error;
// close it first.
func (g *Gate) Open(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.device == nil {
		return ErrUnsupported
	}
	if g.stream != nil {
		return ErrDeviceBusy
	}

	stream, err := g.device.Open(ctx)
	if err != nil {
		return err
	}
	g.stream = stream
	return nil
}

// Capture freezes the current frame and encodes it as a JPEG data URI.
// A previous uncommitted capture is replaced.
func (g *Gate) Capture(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stream == nil {
		return ErrGateNotOpen
	}

	frame, err := g.stream.ReadFrame(ctx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, frame, &jpeg.Options{Quality: captureQuality}); err != nil {
		return err
	}

	g.captured = "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
	return nil
}

// Retake discards the captured frame and returns to live preview. The
// stream is not reacquired.
func (g *Gate) Retake() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stream == nil {
		return ErrGateNotOpen
	}
	g.captured = ""
	return nil
}

// Confirm yields the captured photo. The gate stays open; the caller
// still owes a Close.
func (g *Gate) Confirm() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stream == nil {
		return "", ErrGateNotOpen
	}
	if g.captured == "" {
		return "", ErrNothingToShow
	}
	return g.captured, nil
}

// Close releases the camera stream and discards any uncommitted
// capture. Idempotent; safe on a gate that never opened.
func (g *Gate) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.captured = ""
	if g.stream == nil {
		return nil
	}

	err := g.stream.Close()
	g.stream = nil
	return err
}

// CapturePhoto is the one-shot convenience flow used by the clock
// handlers: open, capture, confirm, close. The stream is released on
// every path.
func CapturePhoto(ctx context.Context, device Device) (string, error) {
	gate := NewGate(device)
	if err := gate.Open(ctx); err != nil {
		return "", err
	}
	defer gate.Close()

	if err := gate.Capture(ctx); err != nil {
		return "", err
	}
	return gate.Confirm()
}
