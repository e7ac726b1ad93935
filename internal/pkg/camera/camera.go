// Package camera provides the capture gate that guards clock-in and
// clock-out: a verification photo must be captured and confirmed before
// either action may be dispatched.
package camera

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"sync/atomic"

	_ "image/jpeg"
	_ "image/png"
)

// Camera errors
var (
	ErrUnsupported      = errors.New("no camera device is available on this kiosk")
	ErrDeviceBusy       = errors.New("camera device is already held by another capture")
	ErrAcquisition      = errors.New("failed to acquire the camera stream")
	ErrPermissionDenied = errors.New("camera access was denied")
)

// Stream is an open camera feed. It must be closed on every exit path;
// the device stays exclusively held until then.
type Stream interface {
	// ReadFrame grabs the current frame.
	ReadFrame(ctx context.Context) (image.Image, error)

	// Close releases the device. Safe to call more than once.
	Close() error
}

// Device is a camera the gate can open. Implementations hold the
// device exclusively between Open and Stream.Close.
type Device interface {
	Name() string
	Open(ctx context.Context) (Stream, error)
}

// SnapshotDevice reads stills from an HTTP snapshot endpoint, the usual
// interface of the IP cameras mounted on kiosk terminals.
type SnapshotDevice struct {
	url    string
	client *http.Client
	held   atomic.Bool
}

func NewSnapshotDevice(url string, client *http.Client) *SnapshotDevice {
	if client == nil {
		client = http.DefaultClient
	}
	return &SnapshotDevice{url: url, client: client}
}

func (d *SnapshotDevice) Name() string {
	return "snapshot:" + d.url
}

// Open claims the device. A second Open while a stream is live fails
// with ErrDeviceBusy.
func (d *SnapshotDevice) Open(ctx context.Context) (Stream, error) {
	if !d.held.CompareAndSwap(false, true) {
		return nil, ErrDeviceBusy
	}

	// Probe once so permission and reachability problems surface at
	// open time, not mid-capture.
	if _, err := d.fetch(ctx); err != nil {
		d.held.Store(false)
		return nil, err
	}

	return &snapshotStream{device: d}, nil
}

func (d *SnapshotDevice) fetch(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrPermissionDenied
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: snapshot endpoint returned %d", ErrAcquisition, resp.StatusCode)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAcquisition, err)
	}
	return img, nil
}

type snapshotStream struct {
	device *SnapshotDevice
	closed atomic.Bool
}

func (s *snapshotStream) ReadFrame(ctx context.Context) (image.Image, error) {
	if s.closed.Load() {
		return nil, ErrAcquisition
	}
	return s.device.fetch(ctx)
}

func (s *snapshotStream) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		s.device.held.Store(false)
	}
	return nil
}
