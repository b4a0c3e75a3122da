package networking

import (
	"errors"
	"net/netip"
	"reflect"
	"strings"
	"testing"

	domainerrors "github.com/maksimkurb/ifselect/src/internal/errors"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

func init() {
	log.DisableLogs()
}

func TestFindInterfaces(t *testing.T) {
	tests := []struct {
		name   string
		spec   string
		family Family
		max    int
		want   []string
	}{
		{"no filter keeps first address per name", "", FamilyAny, 16, []string{"lo", "eth0", "docker0", "ib0"}},
		{"prefix", "eth", FamilyAny, 16, []string{"eth0"}},
		{"infiniband", "ib", FamilyAny, 16, []string{"ib0"}},
		{"negated", "^docker,lo", FamilyAny, 16, []string{"eth0", "ib0"}},
		{"docker", "docker", FamilyAny, 16, []string{"docker0"}},
		{"exact miss", "=eth", FamilyAny, 16, nil},
		{"exact hit", "=eth0", FamilyAny, 16, []string{"eth0"}},
		{"negated exact", "^=eth0", FamilyAny, 16, []string{"lo", "docker0", "ib0"}},
		{"ipv6 only skips ::1", "", FamilyIPv6, 16, []string{"eth0", "ib0"}},
		{"ipv4 only", "", FamilyIPv4, 16, []string{"lo", "eth0", "docker0", "ib0"}},
		{"capacity", "", FamilyAny, 2, []string{"lo", "eth0"}},
		{"zero capacity", "", FamilyAny, 0, nil},
		{"no match", "wlan", FamilyAny, 16, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enum := NewEnumerator(hostTable())
			got, err := enum.FindInterfaces(tt.spec, tt.family, tt.max)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if names := got.Names(); len(names) != len(tt.want) || (len(names) > 0 && !reflect.DeepEqual(names, tt.want)) {
				t.Errorf("FindInterfaces(%q) = %v, want %v", tt.spec, names, tt.want)
			}
		})
	}
}

func TestFindInterfaces_FirstAddressWins(t *testing.T) {
	enum := NewEnumerator(hostTable())

	got, err := enum.FindInterfaces("eth", FamilyIPv6, 16)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected one interface, got %v", got.Names())
	}
	if got[0].Addr.Addr.String() != "2001:db8::5" {
		t.Errorf("Expected the global address to win over link-local, got %s", got[0].Addr)
	}
}

func TestFindInterfaces_DownLinksKeepState(t *testing.T) {
	down := v4("eth1", 5, "10.1.0.5/24")
	down.Up = false
	enum := NewEnumerator(&fakeLister{records: []InterfaceRecord{v4("eth0", 2, "10.0.0.5/24"), down}})

	got, err := enum.FindInterfaces("eth", FamilyAny, 16)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected down links to stay selectable, got %v", got.Names())
	}
	if !got[0].Up || got[1].Up {
		t.Errorf("Expected eth0 up and eth1 down, got %+v", got)
	}

	matched, err := enum.FindInterfaceMatchSubnet(NewSockAddr(netip.MustParseAddr("10.1.0.9"), 0, 0), 16)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(matched) != 1 || matched[0].Up {
		t.Errorf("Expected eth1 reported down, got %+v", matched)
	}
}

func TestFindInterfaces_NeverReturnsDockerOrLoopback(t *testing.T) {
	lister := hostTable()
	lister.records = append(lister.records, v4("docker1", 9, "172.18.0.1/16"), v4("lo:1", 1, "127.0.0.2/8"))
	enum := NewEnumerator(lister)

	for _, family := range []Family{FamilyAny, FamilyIPv4, FamilyIPv6} {
		got, err := enum.FindInterfaces("^docker,lo", family, 16)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for _, s := range got {
			if strings.HasPrefix(s.Name, "docker") || strings.HasPrefix(s.Name, "lo") {
				t.Errorf("Unexpected interface %s for family %s", s.Name, family)
			}
		}
	}
}

func TestFindInterfaces_EnumerationError(t *testing.T) {
	enum := NewEnumerator(&fakeLister{err: errors.New("netlink socket closed")})

	_, err := enum.FindInterfaces("eth", FamilyAny, 16)
	if !errors.Is(err, domainerrors.ErrEnumeration) {
		t.Errorf("Expected ENUMERATION_ERROR, got %v", err)
	}
}

func TestFindInterfaces_StrictFilters(t *testing.T) {
	long := strings.Repeat("e", MaxPrefixLen+1)

	legacy := NewEnumerator(hostTable())
	if _, err := legacy.FindInterfaces(long, FamilyAny, 16); err != nil {
		t.Errorf("Expected legacy mode to truncate silently, got %v", err)
	}

	strict := NewEnumerator(hostTable(), WithStrictFilters(true))
	if _, err := strict.FindInterfaces(long, FamilyAny, 16); !errors.Is(err, domainerrors.ErrInvalidFormat) {
		t.Errorf("Expected INVALID_FORMAT in strict mode, got %v", err)
	}
}

func TestFindInterfaces_ReadsTableEveryCall(t *testing.T) {
	lister := hostTable()
	enum := NewEnumerator(lister)

	first, _ := enum.FindInterfaces("wlan", FamilyAny, 16)
	if len(first) != 0 {
		t.Fatalf("Expected no wlan interface yet, got %v", first.Names())
	}

	lister.records = append(lister.records, v4("wlan0", 10, "192.168.1.20/24"))
	second, _ := enum.FindInterfaces("wlan", FamilyAny, 16)
	if len(second) != 1 || second[0].Name != "wlan0" {
		t.Errorf("Expected hot-plugged wlan0, got %v", second.Names())
	}
	if lister.calls.Load() != 2 {
		t.Errorf("Expected 2 listings, got %d", lister.calls.Load())
	}
}

func TestIsLocalAddress(t *testing.T) {
	enum := NewEnumerator(hostTable())

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.0.0.5", true},
		{"::ffff:10.0.0.5", true},
		{"2001:db8::5", true},
		{"fe80::7", true},
		{"10.0.0.6", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		got, err := enum.IsLocalAddress(tt.ip)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("IsLocalAddress(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}
}

func TestParseIP(t *testing.T) {
	tests := []struct {
		in     string
		family Family
		ok     bool
	}{
		{"192.168.1.1", FamilyIPv4, true},
		{"2001:db8::1", FamilyIPv6, true},
		{"::ffff:1.2.3.4", FamilyIPv4, true},
		{" 10.0.0.1 ", FamilyIPv4, true},
		{"example.com", FamilyAny, false},
	}

	for _, tt := range tests {
		_, family, ok := ParseIP(tt.in)
		if ok != tt.ok || family != tt.family {
			t.Errorf("ParseIP(%q) = %v, %v; want %v, %v", tt.in, family, ok, tt.family, tt.ok)
		}
	}
}
