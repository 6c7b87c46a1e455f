package simtime

import (
	"testing"
	"time"
)

func TestMinutes(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want time.Duration
	}{
		{name: "zero", n: 0, want: 0},
		{name: "half hour", n: 30, want: 30 * time.Minute},
		{name: "full day", n: 1440, want: 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Minutes(tt.n); got != tt.want {
				t.Fatalf("Minutes(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestTimeAdd(t *testing.T) {
	base := FromUnix(1_000_000)

	got := base.Add(Minutes(30))
	if got.Unix() != 1_000_000+1800 {
		t.Fatalf("expected %d, got %d", 1_000_000+1800, got.Unix())
	}
	if base.Unix() != 1_000_000 {
		t.Fatal("Add mutated the receiver")
	}
}

func TestTimeBefore(t *testing.T) {
	a := FromUnix(100)
	b := FromUnix(200)

	if !a.Before(b) {
		t.Fatal("expected a before b")
	}
	if b.Before(a) {
		t.Fatal("expected b not before a")
	}
	if a.Before(a) {
		t.Fatal("expected a not before itself")
	}
}

func TestFromTimeTruncates(t *testing.T) {
	wall := time.Unix(42, 999_999_999)

	if got := FromTime(wall); got.Unix() != 42 {
		t.Fatalf("expected 42, got %d", got.Unix())
	}
}

func TestFixedClock(t *testing.T) {
	instant := FromUnix(5000)
	clock := Fixed(instant)

	if got := clock.Now(); got != instant {
		t.Fatalf("expected %v, got %v", instant, got)
	}
	if got := clock.Now(); got != instant {
		t.Fatalf("expected repeated reads to stay frozen, got %v", got)
	}
}

func TestSystemClock(t *testing.T) {
	before := time.Now().Unix()
	got := System().Now().Unix()
	after := time.Now().Unix()

	if got < before || got > after {
		t.Fatalf("system clock %d outside [%d, %d]", got, before, after)
	}
}
