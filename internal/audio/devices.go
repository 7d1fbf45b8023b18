// Package audio discovers PulseAudio output sinks and resolves the configured device.
package audio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jfreymuth/pulse"
	pulseproto "github.com/jfreymuth/pulse/proto"
)

// Device describes one Pulse output sink surfaced to animalese.
type Device struct {
	ID          string
	Description string
	State       string
	Available   bool
	Muted       bool
	Default     bool
}

// Selection is the resolved output sink plus optional fallback warning context.
type Selection struct {
	Device   Device
	Warning  string
	Fallback bool
}

// ListDevices returns Pulse output sinks with default/availability metadata.
func ListDevices(_ context.Context) ([]Device, error) {
	client, err := pulse.NewClient(
		pulse.ClientApplicationName("animalese"),
		pulse.ClientApplicationIconName("input-keyboard"),
	)
	if err != nil {
		return nil, fmt.Errorf("connect pulse server: %w", err)
	}
	defer client.Close()

	defaultSink, err := client.DefaultSink()
	if err != nil {
		return nil, fmt.Errorf("read default sink: %w", err)
	}
	defaultID := defaultSink.ID()

	var sinkInfos pulseproto.GetSinkInfoListReply
	if err := client.RawRequest(&pulseproto.GetSinkInfoList{}, &sinkInfos); err != nil {
		return nil, fmt.Errorf("list sinks: %w", err)
	}

	devices := make([]Device, 0, len(sinkInfos))
	for _, info := range sinkInfos {
		if info == nil {
			continue
		}
		devices = append(devices, Device{
			ID:          info.SinkName,
			Description: info.Device,
			State:       sinkStateString(info.State),
			Available:   sinkAvailable(info),
			Muted:       info.Mute,
			Default:     info.SinkName == defaultID,
		})
	}
	return devices, nil
}

// SelectDevice resolves the audio.device preference against live sinks.
func SelectDevice(ctx context.Context, preferred string) (Selection, error) {
	devices, err := ListDevices(ctx)
	if err != nil {
		return Selection{}, err
	}
	return selectDeviceFromList(devices, preferred)
}

// selectDeviceFromList applies the selection policy to a pre-fetched list:
// a matching usable sink wins, otherwise the default sink is used with a warning.
func selectDeviceFromList(devices []Device, preferred string) (Selection, error) {
	if len(devices) == 0 {
		return Selection{}, errors.New("no audio output devices found")
	}

	var defaultDevice, byPreference *Device
	preferred = strings.TrimSpace(strings.ToLower(preferred))
	for i := range devices {
		dev := &devices[i]
		if dev.Default {
			defaultDevice = dev
		}
		if byPreference == nil && preferred != "" && preferred != "default" && deviceMatches(*dev, preferred) {
			byPreference = dev
		}
	}

	if preferred != "" && preferred != "default" {
		if byPreference == nil {
			if defaultDevice == nil {
				return Selection{}, fmt.Errorf("audio.device %q did not match any sink and no default sink is set", preferred)
			}
			return usable(*defaultDevice, fmt.Sprintf("audio.device %q did not match any sink; using default %q", preferred, defaultDevice.ID))
		}
		if byPreference.Available && !byPreference.Muted {
			return Selection{Device: *byPreference}, nil
		}
		if defaultDevice == nil || defaultDevice.ID == byPreference.ID {
			return Selection{}, fmt.Errorf("audio.device %q is %s and no usable fallback", byPreference.ID, unusableReason(*byPreference))
		}
		return usable(*defaultDevice, fmt.Sprintf("audio.device %q is %s; falling back to %q", byPreference.ID, unusableReason(*byPreference), defaultDevice.ID))
	}

	if defaultDevice == nil {
		return Selection{}, errors.New("default audio sink is unavailable")
	}
	return usable(*defaultDevice, "")
}

func usable(dev Device, warning string) (Selection, error) {
	if !dev.Available {
		return Selection{}, fmt.Errorf("audio sink %q is not available", dev.ID)
	}
	if dev.Muted {
		return Selection{}, fmt.Errorf("audio sink %q is muted", dev.ID)
	}
	return Selection{Device: dev, Warning: warning, Fallback: warning != ""}, nil
}

func unusableReason(dev Device) string {
	if dev.Muted {
		return "muted"
	}
	return "unavailable"
}

// deviceMatches reports whether a search term matches a device id or description.
func deviceMatches(device Device, term string) bool {
	if term == "" {
		return false
	}
	id := strings.ToLower(device.ID)
	desc := strings.ToLower(device.Description)
	return strings.Contains(id, term) || strings.Contains(desc, term)
}

// sinkStateString maps Pulse sink state constants to human-readable values.
func sinkStateString(state uint32) string {
	switch state {
	case 0:
		return "running"
	case 1:
		return "idle"
	case 2:
		return "suspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}

// sinkAvailable maps Pulse sink port availability to a simple boolean.
func sinkAvailable(info *pulseproto.GetSinkInfoReply) bool {
	if info == nil {
		return false
	}
	if len(info.Ports) == 0 {
		return true
	}
	for _, port := range info.Ports {
		if port.Name != info.ActivePortName {
			continue
		}
		// PulseAudio values: unknown=0, no=1, yes=2.
		return port.Available == 0 || port.Available == 2
	}
	return true
}
