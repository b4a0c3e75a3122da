package networking

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"time"

	"github.com/maksimkurb/ifselect/src/internal/log"
	"github.com/miekg/dns"
	"github.com/vishvananda/netlink"
	"golang.org/x/sys/unix"
)

// HostResolver resolves a hostname or address literal to addresses, best
// candidate first.
type HostResolver interface {
	LookupHost(ctx context.Context, host string) ([]netip.Addr, error)
}

// ZoneResolver maps an IPv6 zone (interface name) to its interface index.
type ZoneResolver interface {
	ZoneIndex(zone string) (uint32, error)
}

// SystemResolver resolves through the Go resolver, which honors
// /etc/hosts and /etc/resolv.conf.
type SystemResolver struct {
	Resolver *net.Resolver
}

// LookupHost implements HostResolver.
func (r *SystemResolver) LookupHost(ctx context.Context, host string) ([]netip.Addr, error) {
	res := r.Resolver
	if res == nil {
		res = net.DefaultResolver
	}
	return res.LookupNetIP(ctx, "ip", host)
}

const (
	defaultDNSPort   = "53"
	dnsClientTimeout = 3 * time.Second
)

// DNSResolver queries one DNS server directly, asking for A records first
// and AAAA records second. Address literals are returned without a query.
type DNSResolver struct {
	server string
	client *dns.Client
}

// NewDNSResolver creates a resolver for server given as "host" or "host:port".
func NewDNSResolver(server string) (*DNSResolver, error) {
	addr := server
	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(server, defaultDNSPort)
	}
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return nil, fmt.Errorf("invalid DNS server address %q: %w", server, err)
	}

	return &DNSResolver{
		server: addr,
		client: &dns.Client{
			Net:     "udp",
			Timeout: dnsClientTimeout,
		},
	}, nil
}

// Server returns the "host:port" the resolver queries.
func (r *DNSResolver) Server() string {
	return r.server
}

// LookupHost implements HostResolver.
func (r *DNSResolver) LookupHost(ctx context.Context, host string) ([]netip.Addr, error) {
	if ip, err := netip.ParseAddr(host); err == nil {
		return []netip.Addr{ip}, nil
	}

	var lastErr error
	for _, qtype := range []uint16{dns.TypeA, dns.TypeAAAA} {
		req := new(dns.Msg)
		req.SetQuestion(dns.Fqdn(host), qtype)
		req.RecursionDesired = true

		resp, _, err := r.client.ExchangeContext(ctx, req, r.server)
		if err != nil {
			log.Debugf("[%04x] DNS query %s %s to %s failed: %v", req.Id, host, dns.TypeToString[qtype], r.server, err)
			lastErr = err
			continue
		}
		if resp.Rcode != dns.RcodeSuccess {
			lastErr = fmt.Errorf("%s %s: %s", host, dns.TypeToString[qtype], dns.RcodeToString[resp.Rcode])
			continue
		}

		var addrs []netip.Addr
		for _, rr := range resp.Answer {
			var ip net.IP
			switch v := rr.(type) {
			case *dns.A:
				ip = v.A
			case *dns.AAAA:
				ip = v.AAAA
			default:
				continue
			}
			if addr, ok := netip.AddrFromSlice(ip); ok {
				addrs = append(addrs, addr.Unmap())
			}
		}
		if len(addrs) > 0 {
			return addrs, nil
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no A or AAAA records for %s", host)
}

// NetlinkZoneResolver resolves zones with netlink link lookups. Numeric
// zones are taken as the index itself.
type NetlinkZoneResolver struct{}

// ZoneIndex implements ZoneResolver.
func (NetlinkZoneResolver) ZoneIndex(zone string) (uint32, error) {
	if idx, err := strconv.ParseUint(zone, 10, 32); err == nil {
		return uint32(idx), nil
	}
	if len(zone) >= unix.IFNAMSIZ {
		return 0, fmt.Errorf("interface name %q longer than %d characters", zone, unix.IFNAMSIZ-1)
	}
	link, err := netlink.LinkByName(zone)
	if err != nil {
		return 0, fmt.Errorf("interface %q: %w", zone, err)
	}
	return uint32(link.Attrs().Index), nil
}
