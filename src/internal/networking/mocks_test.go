package networking

import (
	"context"
	"fmt"
	"net/netip"
	"sync/atomic"

	"github.com/maksimkurb/ifselect/src/internal/utils"
)

// Mock types for testing

type fakeLister struct {
	records []InterfaceRecord
	err     error
	calls   atomic.Int32
}

func (f *fakeLister) ListInterfaces() ([]InterfaceRecord, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]InterfaceRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

// v4 builds an IPv4 record from a CIDR such as "10.0.0.5/24".
func v4(name string, index int, cidr string) InterfaceRecord {
	p := netip.MustParsePrefix(cidr)
	return InterfaceRecord{
		Name:    name,
		Index:   index,
		Addr:    NewSockAddr(p.Addr(), 0, 0),
		Netmask: utils.PrefixNetmask(p),
		Up:      true,
	}
}

// v6 builds an IPv6 record. Link-local addresses get the index as scope.
func v6(name string, index int, cidr string) InterfaceRecord {
	p := netip.MustParsePrefix(cidr)
	var scope uint32
	if p.Addr().IsLinkLocalUnicast() {
		scope = uint32(index)
	}
	return InterfaceRecord{
		Name:    name,
		Index:   index,
		Addr:    NewSockAddr(p.Addr(), 0, scope),
		Netmask: utils.PrefixNetmask(p),
		Up:      true,
	}
}

// hostTable returns a typical table in kernel order: IPv4 addresses first,
// then IPv6 global, then IPv6 link-local.
func hostTable() *fakeLister {
	return &fakeLister{records: []InterfaceRecord{
		v4("lo", 1, "127.0.0.1/8"),
		v4("eth0", 2, "10.0.0.5/24"),
		v4("docker0", 3, "172.17.0.1/16"),
		v4("ib0", 4, "192.168.100.7/24"),
		v6("lo", 1, "::1/128"),
		v6("eth0", 2, "2001:db8::5/64"),
		v6("eth0", 2, "fe80::5/64"),
		v6("ib0", 4, "fe80::7/64"),
	}}
}

type fakeResolver struct {
	hosts map[string][]netip.Addr
	calls atomic.Int32
}

func (f *fakeResolver) LookupHost(_ context.Context, host string) ([]netip.Addr, error) {
	f.calls.Add(1)
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{ip}, nil
	}
	addrs, ok := f.hosts[host]
	if !ok {
		return nil, fmt.Errorf("no such host %s", host)
	}
	return addrs, nil
}

type fakeZones map[string]uint32

func (f fakeZones) ZoneIndex(zone string) (uint32, error) {
	if idx, ok := f[zone]; ok {
		return idx, nil
	}
	return 0, fmt.Errorf("no such interface %s", zone)
}

type mapParams map[string]string

func (m mapParams) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
