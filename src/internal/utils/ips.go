package utils

import (
	"fmt"
	"net"
	"net/netip"
)

// NetmaskFromIP converts a kernel-style mask (4 or 16 bytes) into an address
// of the same family as ip. A 16-byte mask paired with an IPv4 address keeps
// only its last four bytes.
func NetmaskFromIP(ip net.IP, mask net.IPMask) (netip.Addr, error) {
	if ip4 := ip.To4(); ip4 != nil {
		switch len(mask) {
		case net.IPv4len:
			return netip.AddrFrom4([4]byte(mask)), nil
		case net.IPv6len:
			return netip.AddrFrom4([4]byte(mask[12:])), nil
		}
		return netip.Addr{}, fmt.Errorf("invalid IPv4 mask length: %d", len(mask))
	}
	if len(ip) == net.IPv6len && len(mask) == net.IPv6len {
		return netip.AddrFrom16([16]byte(mask)), nil
	}
	return netip.Addr{}, fmt.Errorf("invalid mask %v for address %v", mask, ip)
}

// PrefixNetmask returns the netmask matching p's family and length.
func PrefixNetmask(p netip.Prefix) netip.Addr {
	bits := 32
	if p.Addr().Is6() {
		bits = 128
	}
	mask := net.CIDRMask(p.Bits(), bits)
	if p.Addr().Is4() {
		return netip.AddrFrom4([4]byte(mask))
	}
	return netip.AddrFrom16([16]byte(mask))
}
