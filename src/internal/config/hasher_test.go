package config

import (
	"testing"
	"time"
)

func TestConfigHasher_DeterministicHash(t *testing.T) {
	cfg := DefaultConfig()
	env := newFakeEnv(map[string]string{"NCCL_SOCKET_IFNAME": "eth"})

	hasher1 := NewConfigHasher(cfg, NewParams(WithEnvFiles(), WithLookupEnv(env.lookup)))
	hash1, err := hasher1.CalculateHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}

	hasher2 := NewConfigHasher(cfg, NewParams(WithEnvFiles(), WithLookupEnv(env.lookup)))
	hash2, err := hasher2.CalculateHash()
	if err != nil {
		t.Fatalf("Failed to calculate hash: %v", err)
	}

	if hash1 != hash2 {
		t.Errorf("Hashes should be identical, got %s and %s", hash1, hash2)
	}
	if len(hash1) != 32 {
		t.Errorf("Expected MD5 hex digest, got %q", hash1)
	}
}

func TestConfigHasher_ParamChangesHash(t *testing.T) {
	env := newFakeEnv(map[string]string{"NCCL_SOCKET_IFNAME": "eth"})
	hasher := NewConfigHasher(DefaultConfig(), NewParams(WithEnvFiles(), WithLookupEnv(env.lookup)))

	before, _ := hasher.CalculateHash()
	env.set("NCCL_SOCKET_IFNAME", "ib")
	after, _ := hasher.CalculateHash()

	if before == after {
		t.Error("Expected hash to change with SOCKET_IFNAME")
	}
}

func TestConfigHasher_GeneralChangesHash(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg2 := DefaultConfig()
	cfg2.General.StrictFilters = true

	h1, _ := NewConfigHasher(cfg1, nil).CalculateHash()
	h2, _ := NewConfigHasher(cfg2, nil).CalculateHash()
	if h1 == h2 {
		t.Error("Expected different hashes for different general settings")
	}
}

func TestConfigHasher_Cache(t *testing.T) {
	env := newFakeEnv(map[string]string{"NCCL_COMM_ID": "10.0.0.1:1"})
	hasher := NewConfigHasher(DefaultConfig(), NewParams(WithEnvFiles(), WithLookupEnv(env.lookup)))

	now := time.Unix(1700000000, 0)
	hasher.now = func() time.Time { return now }

	first, err := hasher.GetCurrentConfigHash()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	env.set("NCCL_COMM_ID", "10.0.0.2:1")
	cached, _ := hasher.GetCurrentConfigHash()
	if cached != first {
		t.Error("Expected cached hash within TTL")
	}

	now = now.Add(hashCacheTTL + time.Second)
	expired, _ := hasher.GetCurrentConfigHash()
	if expired == first {
		t.Error("Expected recalculated hash after TTL")
	}

	env.set("NCCL_COMM_ID", "10.0.0.3:1")
	updated, _ := hasher.UpdateCurrentConfigHash()
	if updated == expired {
		t.Error("Expected UpdateCurrentConfigHash to bypass the cache")
	}
}
