package networking

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"testing"

	"github.com/miekg/dns"
)

// startTestDNS serves A records for "node1." and AAAA records for "node6.".
// Every other name gets NXDOMAIN.
func startTestDNS(t *testing.T) string {
	t.Helper()

	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen packet: %v", err)
	}

	server := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)
			m.Authoritative = true

			q := r.Question[0]
			switch {
			case q.Name == "node1." && q.Qtype == dns.TypeA:
				rr, _ := dns.NewRR(fmt.Sprintf("%s 60 IN A 10.0.0.9", q.Name))
				m.Answer = append(m.Answer, rr)
			case q.Name == "node6." && q.Qtype == dns.TypeAAAA:
				rr, _ := dns.NewRR(fmt.Sprintf("%s 60 IN AAAA 2001:db8::9", q.Name))
				m.Answer = append(m.Answer, rr)
			case q.Name == "node1." || q.Name == "node6.":
			default:
				m.SetRcode(r, dns.RcodeNameError)
			}

			w.WriteMsg(m)
		}),
	}

	go func() {
		server.ActivateAndServe()
	}()
	t.Cleanup(func() {
		server.Shutdown()
	})

	return pc.LocalAddr().String()
}

func TestNewDNSResolver(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"127.0.0.1", "127.0.0.1:53"},
		{"127.0.0.1:5353", "127.0.0.1:5353"},
		{"::1", "[::1]:53"},
		{"[::1]:5353", "[::1]:5353"},
		{"dns.example", "dns.example:53"},
	}

	for _, tt := range tests {
		r, err := NewDNSResolver(tt.in)
		if err != nil {
			t.Fatalf("NewDNSResolver(%q) unexpected error: %v", tt.in, err)
		}
		if r.Server() != tt.want {
			t.Errorf("NewDNSResolver(%q).Server() = %q, want %q", tt.in, r.Server(), tt.want)
		}
	}
}

func TestDNSResolver_LookupHost(t *testing.T) {
	r, err := NewDNSResolver(startTestDNS(t))
	if err != nil {
		t.Fatalf("NewDNSResolver: %v", err)
	}
	ctx := context.Background()

	t.Run("A record", func(t *testing.T) {
		addrs, err := r.LookupHost(ctx, "node1")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(addrs) != 1 || addrs[0] != netip.MustParseAddr("10.0.0.9") {
			t.Errorf("Unexpected addresses %v", addrs)
		}
	})

	t.Run("falls back to AAAA", func(t *testing.T) {
		addrs, err := r.LookupHost(ctx, "node6")
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(addrs) != 1 || addrs[0] != netip.MustParseAddr("2001:db8::9") {
			t.Errorf("Unexpected addresses %v", addrs)
		}
	})

	t.Run("NXDOMAIN", func(t *testing.T) {
		if _, err := r.LookupHost(ctx, "missing"); err == nil {
			t.Error("Expected error for unknown host")
		}
	})

	t.Run("literal skips query", func(t *testing.T) {
		addrs, err := r.LookupHost(ctx, "192.0.2.1")
		if err != nil || len(addrs) != 1 || addrs[0] != netip.MustParseAddr("192.0.2.1") {
			t.Errorf("Unexpected result %v, %v", addrs, err)
		}
	})
}

func TestDNSResolver_WithEndpointParser(t *testing.T) {
	r, err := NewDNSResolver(startTestDNS(t))
	if err != nil {
		t.Fatalf("NewDNSResolver: %v", err)
	}

	got, err := NewEndpointParser(r, fakeZones{}).Parse(context.Background(), "node1:7000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.String() != "10.0.0.9<7000>" {
		t.Errorf("Expected 10.0.0.9<7000>, got %s", got)
	}
}

func TestNetlinkZoneResolver(t *testing.T) {
	var r NetlinkZoneResolver

	idx, err := r.ZoneIndex("12")
	if err != nil || idx != 12 {
		t.Errorf("ZoneIndex(\"12\") = %d, %v; want 12, nil", idx, err)
	}

	if _, err := r.ZoneIndex("averyveryverylongname0"); err == nil {
		t.Error("Expected error for name longer than IFNAMSIZ")
	}
}
