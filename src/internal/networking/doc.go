// Package networking selects the network interfaces a networking stack
// should bind to.
//
// It reads the host's interface address table through netlink, filters it
// with interface filter specs and picks interfaces with a fixed fallback
// cascade. It also parses endpoint strings into socket addresses.
//
// # Key Components
//
// FilterSpec: "[^][=]prefix[:port],..." interface filters
//
// Enumerator: filtered enumeration and subnet matching over an InterfaceLister
//
// EndpointParser: "host:port" and "[ipv6%zone]:port" parsing with pluggable
// host and zone resolvers (system, miekg/dns, netlink)
//
// InterfaceSelector: the selection cascade driven by SOCKET_IFNAME,
// SOCKET_FAMILY and COMM_ID
//
// # Example Usage
//
//	enum := networking.NewEnumerator(nil)
//	parser := networking.NewEndpointParser(nil, nil)
//	selector := networking.NewInterfaceSelector(enum, parser, params)
//
//	found, err := selector.SelectInterfaces(ctx, networking.MaxFilterEntries)
//	if err != nil {
//	    log.Fatalf("%v", err)
//	}
//	for _, iface := range found {
//	    fmt.Println(iface.Name, iface.Addr)
//	}
package networking
