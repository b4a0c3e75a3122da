package networking

import (
	"encoding/json"
	"net/netip"
	"testing"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"AF_INET", FamilyIPv4},
		{"AF_INET6", FamilyIPv6},
		{"", FamilyAny},
		{"inet", FamilyAny},
	}

	for _, tt := range tests {
		if got := ParseFamily(tt.in); got != tt.want {
			t.Errorf("ParseFamily(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if FamilyIPv4.String() != "AF_INET" || FamilyIPv6.String() != "AF_INET6" || FamilyAny.String() != "AF_UNSPEC" {
		t.Error("Unexpected Family.String() output")
	}
}

func TestFamilyAllows(t *testing.T) {
	if !FamilyAny.Allows(FamilyIPv4) || !FamilyAny.Allows(FamilyIPv6) {
		t.Error("FamilyAny must allow every family")
	}
	if FamilyIPv4.Allows(FamilyIPv6) || !FamilyIPv4.Allows(FamilyIPv4) {
		t.Error("FamilyIPv4 must allow only IPv4")
	}
}

func TestSockAddrFormatting(t *testing.T) {
	tests := []struct {
		name     string
		addr     SockAddr
		str      string
		hostPort string
	}{
		{
			name:     "IPv4",
			addr:     NewSockAddr(netip.MustParseAddr("10.0.0.1"), 9000, 0),
			str:      "10.0.0.1<9000>",
			hostPort: "10.0.0.1:9000",
		},
		{
			name:     "IPv6 global",
			addr:     NewSockAddr(netip.MustParseAddr("2001:db8::1"), 443, 0),
			str:      "2001:db8::1<443>",
			hostPort: "[2001:db8::1]:443",
		},
		{
			name:     "IPv6 link-local",
			addr:     NewSockAddr(netip.MustParseAddr("fe80::1"), 9000, 2),
			str:      "fe80::1%2<9000>",
			hostPort: "[fe80::1%2]:9000",
		},
		{
			name:     "zero value",
			addr:     SockAddr{},
			str:      "",
			hostPort: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.String(); got != tt.str {
				t.Errorf("String() = %q, want %q", got, tt.str)
			}
			if got := tt.addr.HostPort(); got != tt.hostPort {
				t.Errorf("HostPort() = %q, want %q", got, tt.hostPort)
			}
		})
	}
}

func TestNewSockAddr(t *testing.T) {
	mapped := NewSockAddr(netip.MustParseAddr("::ffff:10.1.2.3"), 80, 7)
	if mapped.Family() != FamilyIPv4 {
		t.Errorf("Expected IPv4-mapped address to be unmapped, got %v", mapped.Family())
	}
	if mapped.ScopeID != 0 {
		t.Errorf("Expected IPv4 scope to be dropped, got %d", mapped.ScopeID)
	}

	zoned := NewSockAddr(netip.MustParseAddr("fe80::1%eth0"), 80, 3)
	if zoned.Addr.Zone() != "" || zoned.ScopeID != 3 {
		t.Errorf("Expected zone stripped and scope kept, got %q/%d", zoned.Addr.Zone(), zoned.ScopeID)
	}
}

func TestSockAddrPortNumber(t *testing.T) {
	if got := NewSockAddr(netip.MustParseAddr("10.0.0.1"), 9000, 0).PortNumber(); got != 9000 {
		t.Errorf("PortNumber() = %d, want 9000", got)
	}
	if got := (SockAddr{Port: 9000}).PortNumber(); got != 0 {
		t.Errorf("PortNumber() of invalid address = %d, want 0", got)
	}
}

func TestSockAddrAddrPort(t *testing.T) {
	ap := NewSockAddr(netip.MustParseAddr("fe80::1"), 9000, 4).AddrPort()
	if ap.String() != "[fe80::1%4]:9000" {
		t.Errorf("AddrPort() = %s", ap)
	}
}

func TestSockAddrJSON(t *testing.T) {
	sel := SelectedInterface{Name: "eth0", Addr: NewSockAddr(netip.MustParseAddr("10.0.0.5"), 0, 0)}
	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != `{"name":"eth0","addr":"10.0.0.5:0","up":false}` {
		t.Errorf("Unexpected JSON: %s", data)
	}
}
