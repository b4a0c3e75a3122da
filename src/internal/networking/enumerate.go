package networking

import (
	"net/netip"

	"github.com/maksimkurb/ifselect/src/internal/errors"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

// SelectedInterface is an interface chosen by the enumerator together with
// the address it was chosen for. Up reports the link state; down links are
// still selected.
type SelectedInterface struct {
	Name string   `json:"name"`
	Addr SockAddr `json:"addr"`
	Up   bool     `json:"up"`
}

// SelectionResult is an ordered list of chosen interfaces, at most one entry
// per interface name.
type SelectionResult []SelectedInterface

// Names returns the interface names in order.
func (r SelectionResult) Names() []string {
	names := make([]string, len(r))
	for i, s := range r {
		names[i] = s.Name
	}
	return names
}

func (r SelectionResult) contains(name string) bool {
	for _, s := range r {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Enumerator selects interfaces from the table returned by an InterfaceLister.
// It holds no state besides its configuration, so one Enumerator may be used
// from many goroutines.
type Enumerator struct {
	lister InterfaceLister
	strict bool
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithStrictFilters makes filter specs with overlong prefixes fail with
// INVALID_FORMAT instead of being truncated.
func WithStrictFilters(strict bool) EnumeratorOption {
	return func(e *Enumerator) {
		e.strict = strict
	}
}

// NewEnumerator creates an enumerator. A nil lister uses netlink.
func NewEnumerator(lister InterfaceLister, opts ...EnumeratorOption) *Enumerator {
	if lister == nil {
		lister = NewNetlinkLister()
	}
	e := &Enumerator{lister: lister}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Enumerator) list() ([]InterfaceRecord, error) {
	records, err := e.lister.ListInterfaces()
	if err != nil {
		return nil, errors.NewEnumerationError("failed to list network interfaces", err)
	}
	return records, nil
}

// FindInterfaces returns up to maxResults interfaces whose names pass the
// filter spec, restricted to family. IPv6 loopback addresses are skipped and
// only the first address seen for each name is kept.
func (e *Enumerator) FindInterfaces(spec string, family Family, maxResults int) (SelectionResult, error) {
	var filter FilterSpec
	if e.strict {
		var err error
		if filter, err = ParseFilterSpecStrict(spec); err != nil {
			return nil, err
		}
	} else {
		filter = ParseFilterSpec(spec)
	}

	records, err := e.list()
	if err != nil {
		return nil, err
	}

	var found SelectionResult
	for _, rec := range records {
		if len(found) >= maxResults {
			break
		}
		addrFamily := rec.Addr.Family()
		if addrFamily == FamilyAny {
			continue
		}

		log.Debugf("Found interface %s:%s", rec.Name, rec.Addr)

		if !family.Allows(addrFamily) {
			continue
		}
		if addrFamily == FamilyIPv6 && rec.Addr.Addr == netip.IPv6Loopback() {
			continue
		}
		if !filter.Match(rec.Name) {
			continue
		}
		// Kernel order is IPv4, IPv6 global, IPv6 link-local, so the first
		// address kept for a name is the most useful one.
		if found.contains(rec.Name) {
			continue
		}
		found = append(found, SelectedInterface{Name: rec.Name, Addr: rec.Addr, Up: rec.Up})
	}

	if len(found) == 0 {
		log.Debugf("No interface matches %q (family %s)", spec, family)
	}
	return found, nil
}

// IsLocalAddress reports whether ip is assigned to one of the host's
// interfaces. Strings that are not IP literals are never local.
func (e *Enumerator) IsLocalAddress(ip string) (bool, error) {
	target, err := netip.ParseAddr(ip)
	if err != nil {
		return false, nil
	}
	target = target.Unmap().WithZone("")

	records, err := e.list()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.Addr.Addr == target {
			return true, nil
		}
	}
	return false, nil
}
