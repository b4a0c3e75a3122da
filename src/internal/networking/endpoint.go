package networking

import (
	"context"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/maksimkurb/ifselect/src/internal/errors"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

// EndpointParser turns "host:port" and "[ipv6%zone]:port" strings into
// socket addresses.
type EndpointParser struct {
	hosts  HostResolver
	zones  ZoneResolver
	strict bool
}

// EndpointOption configures an EndpointParser.
type EndpointOption func(*EndpointParser)

// WithStrictEndpoints rejects overlong host names instead of truncating them.
func WithStrictEndpoints(strict bool) EndpointOption {
	return func(p *EndpointParser) {
		p.strict = strict
	}
}

// NewEndpointParser creates a parser. Nil resolvers fall back to the system
// resolver and netlink zone lookups.
func NewEndpointParser(hosts HostResolver, zones ZoneResolver, opts ...EndpointOption) *EndpointParser {
	if hosts == nil {
		hosts = &SystemResolver{}
	}
	if zones == nil {
		zones = NetlinkZoneResolver{}
	}
	p := &EndpointParser{hosts: hosts, zones: zones}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses text into a socket address. Malformed input fails with
// INVALID_FORMAT, failed host or zone lookups with RESOLUTION_FAILED.
// Lookups are never retried.
func (p *EndpointParser) Parse(ctx context.Context, text string) (SockAddr, error) {
	ep, err := parseEndpointSyntax(text, p.strict)
	if err != nil {
		return SockAddr{}, err
	}
	if ep.bracketed {
		return p.resolveZone(ep)
	}
	return p.resolveHost(ctx, text, ep)
}

// ValidateEndpoint checks endpoint syntax in strict mode without resolving
// host names or zones.
func ValidateEndpoint(text string) error {
	_, err := parseEndpointSyntax(text, true)
	return err
}

// endpointSyntax is an endpoint split into its parts before any lookup.
type endpointSyntax struct {
	bracketed bool
	host      string
	addr      netip.Addr
	zone      string
	hasZone   bool
	port      uint16
}

func parseEndpointSyntax(text string, strict bool) (endpointSyntax, error) {
	if len(text) <= 1 {
		return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("endpoint %q is too short", text), nil)
	}
	if text[0] == '[' {
		return parseBracketed(text, strict)
	}
	return parseHostPort(text, strict)
}

func parseHostPort(text string, strict bool) (endpointSyntax, error) {
	entries, err := parseFilters(text, 1, strict)
	if err != nil {
		return endpointSyntax{}, err
	}
	if len(entries) != 1 {
		return endpointSyntax{}, errors.NewInvalidFormatError(
			fmt.Sprintf("no valid <ipv4_or_hostname>:<port> pair in %q", text), nil)
	}
	port, err := endpointPort(entries[0].Port, hostPortHasPort(text), text)
	if err != nil {
		return endpointSyntax{}, err
	}
	return endpointSyntax{host: entries[0].Prefix, port: port}, nil
}

// hostPortHasPort reports whether the entry the filter parser keeps from
// text carries a ":port" part. Entries with an empty host are skipped there
// and here.
func hostPortHasPort(text string) bool {
	for _, seg := range strings.Split(text, ",") {
		host, _, found := strings.Cut(seg, ":")
		if host == "" {
			continue
		}
		return found
	}
	return false
}

func parseBracketed(text string, strict bool) (endpointSyntax, error) {
	zoneAt, closeAt := -1, -1
	for i := 1; i < len(text); i++ {
		if text[i] == '%' && zoneAt < 0 {
			zoneAt = i
		}
		if text[i] == ']' {
			closeAt = i
			break
		}
	}
	if closeAt < 0 {
		return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("no valid [ipv6]:port pair in %q", text), nil)
	}

	hostEnd := closeAt
	if zoneAt >= 0 {
		hostEnd = zoneAt
	}
	addr, err := netip.ParseAddr(text[1:hostEnd])
	if err != nil || !addr.Is6() || addr.Zone() != "" {
		return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("invalid IPv6 address in %q", text), err)
	}

	ep := endpointSyntax{bracketed: true, addr: addr}
	if zoneAt >= 0 {
		ep.hasZone = true
		ep.zone = text[zoneAt+1 : closeAt]
		if ep.zone == "" {
			return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("empty zone in %q", text), nil)
		}
		if strings.IndexByte(ep.zone, '%') >= 0 {
			return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("more than one zone in %q", text), nil)
		}
	}

	port, hasPort := AnyPort, false
	if rest := text[closeAt+1:]; rest != "" {
		if rest[0] != ':' && strict {
			return endpointSyntax{}, errors.NewInvalidFormatError(fmt.Sprintf("expected ':' after ']' in %q", text), nil)
		}
		port, hasPort = atoi(rest[1:]), true
	}
	if ep.port, err = endpointPort(port, hasPort, text); err != nil {
		return endpointSyntax{}, err
	}
	return ep, nil
}

func (p *EndpointParser) resolveHost(ctx context.Context, text string, ep endpointSyntax) (SockAddr, error) {
	addrs, err := p.hosts.LookupHost(ctx, ep.host)
	if err != nil {
		return SockAddr{}, errors.NewResolutionError(fmt.Sprintf("failed to resolve %q", ep.host), err)
	}
	for _, addr := range addrs {
		addr = addr.Unmap()
		if !addr.Is4() && !addr.Is6() {
			continue
		}
		resolved := NewSockAddr(addr, ep.port, 0)
		log.Debugf("Resolved %s to %s", text, resolved)
		return resolved, nil
	}
	return SockAddr{}, errors.NewResolutionError(fmt.Sprintf("no IPv4 or IPv6 address for %q", ep.host), nil)
}

// resolveZone maps the zone to a scope id. Numeric zones are the index
// itself, as SockAddr.Host renders them.
func (p *EndpointParser) resolveZone(ep endpointSyntax) (SockAddr, error) {
	var scope uint32
	if ep.hasZone {
		if idx, err := strconv.ParseUint(ep.zone, 10, 32); err == nil {
			scope = uint32(idx)
		} else if scope, err = p.zones.ZoneIndex(ep.zone); err != nil {
			return SockAddr{}, errors.NewResolutionError(fmt.Sprintf("failed to resolve zone %q", ep.zone), err)
		}
	}
	return SockAddr{Addr: ep.addr, Port: ep.port, ScopeID: scope}, nil
}

// endpointPort converts a parsed port into the socket port. A missing port
// reads as 0; values outside 0-65535 are rejected.
func endpointPort(port int, present bool, text string) (uint16, error) {
	if !present {
		return 0, nil
	}
	if port < 0 || port > 0xffff {
		return 0, errors.NewInvalidFormatError(
			fmt.Sprintf("port %s out of range in %q", strconv.Itoa(port), text), nil)
	}
	return uint16(port), nil
}

// ParseIP parses an IPv4 or IPv6 literal without any lookup.
func ParseIP(s string) (netip.Addr, Family, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, FamilyAny, false
	}
	addr = addr.Unmap().WithZone("")
	if addr.Is4() {
		return addr, FamilyIPv4, true
	}
	return addr, FamilyIPv6, true
}
