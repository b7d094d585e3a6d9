package gadget

import (
	"fmt"
	"net"

	"github.com/j-keck/arping"
)

// AssistantMAC resolves the hardware address of the voice assistant device.
// Needs the 'cap_net_raw+ep' capability.
func AssistantMAC(ip string) (string, error) {
	addr := net.ParseIP(ip)
	if addr == nil {
		return "", fmt.Errorf("invalid ip %q", ip)
	}
	hw, _, err := arping.Ping(addr)
	if err != nil {
		return "", fmt.Errorf("could not get the mac address: %w", err)
	}
	return hw.String(), nil
}
