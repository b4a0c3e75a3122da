package networking

import (
	"net/netip"
	"strconv"

	"golang.org/x/sys/unix"
)

// Family is an address family restriction.
type Family int

const (
	FamilyAny  Family = unix.AF_UNSPEC
	FamilyIPv4 Family = unix.AF_INET
	FamilyIPv6 Family = unix.AF_INET6
)

// ParseFamily maps the SOCKET_FAMILY values "AF_INET" and "AF_INET6" to a
// family. Anything else means no restriction.
func ParseFamily(s string) Family {
	switch s {
	case "AF_INET":
		return FamilyIPv4
	case "AF_INET6":
		return FamilyIPv6
	default:
		return FamilyAny
	}
}

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "AF_INET"
	case FamilyIPv6:
		return "AF_INET6"
	default:
		return "AF_UNSPEC"
	}
}

// Allows reports whether an address of family other passes the restriction.
func (f Family) Allows(other Family) bool {
	return f == FamilyAny || f == other
}

// SockAddr is an IPv4 or IPv6 socket address. The family is given by Addr;
// ScopeID is only meaningful for IPv6.
type SockAddr struct {
	Addr    netip.Addr
	Port    uint16
	ScopeID uint32
}

// NewSockAddr builds a SockAddr, unmapping IPv4-mapped IPv6 addresses and
// dropping the scope of IPv4 addresses.
func NewSockAddr(addr netip.Addr, port uint16, scopeID uint32) SockAddr {
	addr = addr.WithZone("")
	if addr.Is4In6() {
		addr = addr.Unmap()
	}
	if addr.Is4() {
		scopeID = 0
	}
	return SockAddr{Addr: addr, Port: port, ScopeID: scopeID}
}

// Family returns the address family, FamilyAny for the zero value.
func (a SockAddr) Family() Family {
	switch {
	case a.Addr.Is4():
		return FamilyIPv4
	case a.Addr.Is6():
		return FamilyIPv6
	default:
		return FamilyAny
	}
}

// IsValid reports whether a holds an IPv4 or IPv6 address.
func (a SockAddr) IsValid() bool {
	return a.Addr.IsValid()
}

// PortNumber returns the port in host byte order, 0 for an invalid address.
func (a SockAddr) PortNumber() uint16 {
	if !a.IsValid() {
		return 0
	}
	return a.Port
}

// Host renders the numeric host, with a numeric zone for scoped IPv6.
func (a SockAddr) Host() string {
	if !a.IsValid() {
		return ""
	}
	if a.Addr.Is6() && a.ScopeID != 0 {
		return a.Addr.String() + "%" + strconv.FormatUint(uint64(a.ScopeID), 10)
	}
	return a.Addr.String()
}

// String renders the address as "host<port>" for diagnostics. It never
// performs name lookups.
func (a SockAddr) String() string {
	if !a.IsValid() {
		return ""
	}
	return a.Host() + "<" + strconv.FormatUint(uint64(a.Port), 10) + ">"
}

// HostPort renders the address in the endpoint syntax accepted by
// EndpointParser: "host:port" or "[host%zone]:port".
func (a SockAddr) HostPort() string {
	if !a.IsValid() {
		return ""
	}
	port := strconv.FormatUint(uint64(a.Port), 10)
	if a.Addr.Is6() {
		return "[" + a.Host() + "]:" + port
	}
	return a.Host() + ":" + port
}

// AddrPort returns the address as a netip.AddrPort with the scope as zone.
func (a SockAddr) AddrPort() netip.AddrPort {
	addr := a.Addr
	if addr.Is6() && a.ScopeID != 0 {
		addr = addr.WithZone(strconv.FormatUint(uint64(a.ScopeID), 10))
	}
	return netip.AddrPortFrom(addr, a.Port)
}

// MarshalText implements encoding.TextMarshaler using HostPort.
func (a SockAddr) MarshalText() ([]byte, error) {
	return []byte(a.HostPort()), nil
}
