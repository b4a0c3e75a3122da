package networking

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/maksimkurb/ifselect/src/internal/utils"
	"github.com/vishvananda/netlink"
)

// InterfaceRecord is one address configured on a network interface.
// Addr and Netmask always belong to the same family.
type InterfaceRecord struct {
	Name    string
	Index   int
	Addr    SockAddr
	Netmask netip.Addr
	Up      bool
}

// InterfaceLister lists the addresses configured on the host's interfaces.
// Implementations must read the table fresh on every call.
type InterfaceLister interface {
	ListInterfaces() ([]InterfaceRecord, error)
}

// NetlinkLister lists interface addresses through netlink. Records come in
// kernel dump order: every IPv4 address first, then every IPv6 address.
type NetlinkLister struct{}

// NewNetlinkLister creates a lister backed by the host's netlink socket.
func NewNetlinkLister() *NetlinkLister {
	return &NetlinkLister{}
}

// ListInterfaces implements InterfaceLister.
func (l *NetlinkLister) ListInterfaces() ([]InterfaceRecord, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	byIndex := make(map[int]*netlink.LinkAttrs, len(links))
	for _, link := range links {
		byIndex[link.Attrs().Index] = link.Attrs()
	}

	var records []InterfaceRecord
	for _, family := range []int{netlink.FAMILY_V4, netlink.FAMILY_V6} {
		addrs, err := netlink.AddrList(nil, family)
		if err != nil {
			return nil, fmt.Errorf("failed to list addresses: %w", err)
		}
		for _, addr := range addrs {
			attrs, ok := byIndex[addr.LinkIndex]
			if !ok || addr.IPNet == nil {
				continue
			}
			rec, ok := recordFromAddr(attrs, addr.IPNet)
			if !ok {
				continue
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func recordFromAddr(attrs *netlink.LinkAttrs, ipNet *net.IPNet) (InterfaceRecord, bool) {
	ip, ok := netip.AddrFromSlice(ipNet.IP)
	if !ok {
		return InterfaceRecord{}, false
	}
	ip = ip.Unmap()
	mask, err := utils.NetmaskFromIP(ipNet.IP, ipNet.Mask)
	if err != nil || mask.Is4() != ip.Is4() {
		return InterfaceRecord{}, false
	}

	var scope uint32
	if ip.Is6() && (ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast()) {
		scope = uint32(attrs.Index)
	}

	return InterfaceRecord{
		Name:    attrs.Name,
		Index:   attrs.Index,
		Addr:    NewSockAddr(ip, 0, scope),
		Netmask: mask,
		Up:      attrs.Flags&net.FlagUp != 0,
	}, true
}
