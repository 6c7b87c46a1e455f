package command

import "testing"

func TestKindStringCoversEveryVariant(t *testing.T) {
	for k := KindNope; k <= KindRestrictCertainRoles; k++ {
		if got := k.String(); got == "unknown" {
			t.Fatalf("Kind(%d) has no wire name", int(k))
		}
	}

	if got := Kind(500).String(); got != "unknown" {
		t.Fatalf("Kind(500).String() = %q, want %q", got, "unknown")
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for k := KindNope; k <= KindRestrictCertainRoles; k++ {
		got, ok := ParseKind(k.String())
		if !ok {
			t.Fatalf("ParseKind(%q) not recognized", k.String())
		}
		if got != k {
			t.Fatalf("ParseKind(%q) = %v, want %v", k.String(), got, k)
		}
	}

	if _, ok := ParseKind("quarantine_nobody"); ok {
		t.Fatal("expected unknown name to be rejected")
	}
}

func TestWireNamesAreUnique(t *testing.T) {
	seen := make(map[string]Kind)
	for k := KindNope; k <= KindRestrictCertainRoles; k++ {
		name := k.String()
		if prev, ok := seen[name]; ok {
			t.Fatalf("kinds %v and %v share wire name %q", prev, k, name)
		}
		seen[name] = k
	}
}
