package configs

import (
	"net"
	"time"
)

// LocalIP returns the address other machines on the LAN can reach this host
// at, or 127.0.0.1 when there is no route.
func LocalIP() string {
	conn, err := net.DialTimeout("udp", "10.255.255.255:1", 100*time.Millisecond)
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()
	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok && addr.IP != nil {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
