package backend

import (
	"github.com/notargets/gocca"
)

// DefaultModes is the device probe order, preferring parallel backends and
// falling back to Serial. Each entry is an OCCA device-properties JSON
// string passed straight to gocca.NewDevice.
var DefaultModes = []string{
	`{"mode": "OpenMP"}`,
	`{"mode": "CUDA", "device_id": 0}`,
	`{"mode": "Serial"}`,
}

// Probe tries each property set in order and returns the first device that
// opens. When every probe fails it returns BackendUnavailableError so the
// caller can decide whether to fall back to the reference backend.
func Probe(modes ...string) (*gocca.OCCADevice, error) {
	if len(modes) == 0 {
		modes = DefaultModes
	}
	var lastErr error
	for _, props := range modes {
		device, err := gocca.NewDevice(props)
		if err == nil {
			return device, nil
		}
		lastErr = err
	}
	return nil, &BackendUnavailableError{Modes: modes, Err: lastErr}
}
