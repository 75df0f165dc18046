package core

import (
	"net"
	"testing"
)

func TestLocalAddress(t *testing.T) {
	addr := LocalAddress()
	if addr == "" {
		t.Fatal("LocalAddress() returned an empty string")
	}
	if net.ParseIP(addr) == nil {
		t.Errorf("LocalAddress() = %q, not a valid IP", addr)
	}
	if again := LocalAddress(); again != addr {
		t.Errorf("LocalAddress() changed between calls: %q then %q", addr, again)
	}
}
