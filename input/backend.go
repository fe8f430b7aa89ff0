package input

import (
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// errors
var (
	ErrNoDevices = errors.New("no capture devices found")
	ErrBadDevice = errors.New("device not found")
)

type Backend interface {
	// Init should do nothing if called more than once.
	Init() error
	Close() error

	Devices() ([]Device, error)
	DefaultDevice() (Device, error)
	Start(SessionConfig) (Session, error)
}

// DeviceResolver is implemented by backends whose devices can be named
// without appearing in Devices, such as file paths.
type DeviceResolver interface {
	ResolveDevice(name string) (Device, error)
}

type NamedBackend struct {
	Name string
	Backend
}

var Backends []NamedBackend

// RegisterBackend registers a backend globally. This function is not
// thread-safe, and most packages should call it on init().
func RegisterBackend(name string, b Backend) {
	Backends = append(Backends, NamedBackend{
		Name:    name,
		Backend: b,
	})
}

// Get all installed backend names.
func GetAllBackendNames() []string {
	out := make([]string, len(Backends))
	for i, backend := range Backends {
		out[i] = backend.Name
	}
	return out
}

// Get the default backend depending on what is installed.
func DefaultBackend() string {
	if HasBackend("portaudio") {
		return "portaudio"
	}

	if runtime.GOOS == "linux" {
		if path, _ := exec.LookPath("parec"); path != "" {
			if HasBackend("parec") {
				return "parec"
			}
		}
	}

	return ""
}

// FindBackend is a helper function that finds a backend. It returns nil if the
// backend is not found.
func FindBackend(name string) Backend {
	for _, backend := range Backends {
		if backend.Name == name {
			return backend.Backend
		}
	}
	return nil
}

func HasBackend(name string) bool {
	return FindBackend(name) != nil
}

func InitBackend(bknd string) (Backend, error) {
	backend := FindBackend(bknd)
	if backend == nil {
		return nil, fmt.Errorf("backend not found: %q; check list-backends", bknd)
	}

	if err := backend.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize input backend")
	}

	return backend, nil
}

// GetDevice picks a capture device. An empty name picks the backend default.
// Otherwise the name must match a device exactly, or be an index in to the
// device list written as "2" or "#2".
func GetDevice(backend Backend, device string) (Device, error) {
	if device == "" {
		devices, err := backend.Devices()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get devices")
		}

		if len(devices) == 0 {
			return nil, ErrNoDevices
		}

		def, err := backend.DefaultDevice()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get default device")
		}
		return def, nil
	}

	if r, ok := backend.(DeviceResolver); ok {
		return r.ResolveDevice(device)
	}

	devices, err := backend.Devices()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get devices")
	}

	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	for idx := range devices {
		if devices[idx].String() == device {
			return devices[idx], nil
		}
	}

	if idx, err := strconv.Atoi(strings.TrimPrefix(device, "#")); err == nil {
		if idx < 0 || idx >= len(devices) {
			return nil, errors.Wrapf(ErrBadDevice,
				"index %d out of range [0, %d); check list-devices", idx, len(devices))
		}

		return devices[idx], nil
	}

	return nil, errors.Wrapf(ErrBadDevice, "%q; check list-devices", device)
}
