package networking

import (
	"github.com/maksimkurb/ifselect/src/internal/log"
)

// SameSubnet reports whether remote lies in the subnet of the local
// interface address. Addresses of different families never match. For IPv6
// the scope ids must also be equal, since two links can carry the same
// link-local prefix.
func SameSubnet(local InterfaceRecord, remote SockAddr) bool {
	family := local.Addr.Family()
	if family == FamilyAny || family != remote.Family() {
		return false
	}
	if local.Netmask.Is4() != local.Addr.Addr.Is4() {
		return false
	}

	switch family {
	case FamilyIPv4:
		l, m, r := local.Addr.Addr.As4(), local.Netmask.As4(), remote.Addr.As4()
		return maskedEqual(l[:], r[:], m[:])
	case FamilyIPv6:
		l, m, r := local.Addr.Addr.As16(), local.Netmask.As16(), remote.Addr.As16()
		return maskedEqual(l[:], r[:], m[:]) && local.Addr.ScopeID == remote.ScopeID
	}
	return false
}

func maskedEqual(a, b, mask []byte) bool {
	for i := range mask {
		if a[i]&mask[i] != b[i]&mask[i] {
			return false
		}
	}
	return true
}

// FindInterfaceMatchSubnet returns up to maxResults interfaces sharing a
// subnet with remote, in OS order. Loopback interfaces are considered too.
// An empty result is not an error.
func (e *Enumerator) FindInterfaceMatchSubnet(remote SockAddr, maxResults int) (SelectionResult, error) {
	records, err := e.list()
	if err != nil {
		return nil, err
	}

	var found SelectionResult
	for _, rec := range records {
		if len(found) >= maxResults {
			break
		}
		if rec.Addr.Family() == FamilyAny || !SameSubnet(rec, remote) {
			continue
		}
		log.Debugf("Found interface %s:%s in the same subnet as remote address %s", rec.Name, rec.Addr, remote)
		found = append(found, SelectedInterface{Name: rec.Name, Addr: rec.Addr, Up: rec.Up})
	}

	if len(found) == 0 {
		log.Errorf("No interface found in the same subnet as remote address %s", remote)
	}
	return found, nil
}
