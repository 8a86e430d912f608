package filterchain

import "testing"

func TestResolverFirstMatchWins(t *testing.T) {
	r := NewResolver()
	defs := []Definition{
		{Pattern: "/admin/login", Chain: ChainAnon},
		{Pattern: "/admin/**", Chain: ChainAuthc},
		{Pattern: "/**", Chain: ChainAnon},
	}
	if err := r.RegisterAll(defs); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	r.Freeze()

	tests := []struct {
		path  string
		chain string
	}{
		{"/admin/login", ChainAnon},
		{"/admin/users", ChainAuthc},
		{"/public/page", ChainAnon},
	}
	for _, tc := range tests {
		chain, ok := r.Resolve(tc.path)
		if !ok {
			t.Fatalf("Resolve(%q) found no chain", tc.path)
		}
		if chain != tc.chain {
			t.Errorf("Resolve(%q) = %q, want %q", tc.path, chain, tc.chain)
		}
	}
}

func TestResolverNoMatch(t *testing.T) {
	r := NewResolver()
	if err := r.Register("/admin/**", ChainAuthc); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	r.Freeze()

	if _, ok := r.Resolve("/public/page"); ok {
		t.Fatal("expected no match")
	}
}

func TestResolverRegisterRules(t *testing.T) {
	r := NewResolver()

	if err := r.Register("", ChainAnon); err == nil {
		t.Fatal("expected error for empty pattern")
	}
	if err := r.Register("/a", ""); err == nil {
		t.Fatal("expected error for empty chain")
	}

	if err := r.Register("/a", ChainAnon); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// Re-registering a pattern updates in place, keeping its position.
	if err := r.Register("/a", ChainAuthc); err != nil {
		t.Fatalf("re-register failed: %v", err)
	}
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
	if defs := r.Definitions(); defs[0].Chain != ChainAuthc {
		t.Fatalf("chain = %q, want %q", defs[0].Chain, ChainAuthc)
	}

	r.Freeze()
	if err := r.Register("/b", ChainAnon); err == nil {
		t.Fatal("expected error after freeze")
	}
}
