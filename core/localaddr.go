package core

import (
	"net"
	"sync"
)

var (
	localAddrOnce sync.Once
	localAddr     string
)

// LocalAddress returns the address this host is reachable at: the first
// non-loopback IPv4 interface address, falling back to a non-link-local
// IPv6 address, then to loopback. The interfaces are probed once per
// process and the result is cached.
func LocalAddress() string {
	localAddrOnce.Do(func() { localAddr = probeLocalAddress() })
	return localAddr
}

func probeLocalAddress() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "127.0.0.1"
	}
	var v6 string
	for _, addr := range addrs {
		ipnet, ok := addr.(*net.IPNet)
		if !ok || ipnet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipnet.IP.To4(); ip4 != nil {
			return ip4.String()
		}
		if v6 == "" && !ipnet.IP.IsLinkLocalUnicast() {
			v6 = ipnet.IP.String()
		}
	}
	if v6 != "" {
		return v6
	}
	return "127.0.0.1"
}
