// internal/device/endpoints.go
package device

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
)

// channelPorts is fixed device topology: every channel card runs its
// own web UI on its own port of the same host.
var channelPorts = map[string]int{
	"1": 9344,
	"2": 9345,
	"3": 9346,
	"4": 9347,
}

// KnownChannel reports whether id maps to a device port.
func KnownChannel(id string) bool {
	_, ok := channelPorts[id]
	return ok
}

// KnownChannels returns the valid channel identifiers, sorted.
func KnownChannels() []string {
	out := make([]string, 0, len(channelPorts))
	for id := range channelPorts {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// EndpointURL returns the web UI base URL for one channel.
func EndpointURL(ip, channel string) (string, error) {
	port, ok := channelPorts[channel]
	if !ok {
		return "", errors.Errorf("device: no port for channel %q", channel)
	}
	return fmt.Sprintf("http://%s:%d/", ip, port), nil
}
