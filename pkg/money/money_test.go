package money

import (
	"errors"
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	got, err := Add(1, 2)
	if err != nil || got != 3 {
		t.Fatalf("Add(1,2) = %d, %v", got, err)
	}
	if _, err := Add(math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("want ErrOverflow, got %v", err)
	}
}

func TestSub(t *testing.T) {
	got, err := Sub(10, 4)
	if err != nil || got != 6 {
		t.Fatalf("Sub(10,4) = %d, %v", got, err)
	}
	if _, err := Sub(4, 10); !errors.Is(err, ErrOverflow) {
		t.Fatalf("want ErrOverflow on underflow, got %v", err)
	}
}

func TestAccrueInterest_ThirtyDays(t *testing.T) {
	// 1,000,000 at 1200 bps over 30 days:
	// 1_000_000 * 1200 * 2_592_000 / (10_000 * 31_536_000) = 9863
	got, err := AccrueInterest(1_000_000, 1200, 30*86_400)
	if err != nil {
		t.Fatalf("AccrueInterest: %v", err)
	}
	if got != 9863 {
		t.Fatalf("interest = %d, want 9863", got)
	}
}

func TestAccrueInterest_NoElapsedTime(t *testing.T) {
	for _, secs := range []int64{0, -5} {
		got, err := AccrueInterest(1_000_000, 1200, secs)
		if err != nil || got != 0 {
			t.Fatalf("AccrueInterest(elapsed=%d) = %d, %v", secs, got, err)
		}
	}
}

func TestAccrueInterest_LargePrincipalNoOverflow(t *testing.T) {
	// A principal that would overflow a 64-bit intermediate product but
	// not the 128-bit one.
	got, err := AccrueInterest(math.MaxUint64/2, 10_000, 365*86_400)
	if err != nil {
		t.Fatalf("AccrueInterest: %v", err)
	}
	if got != math.MaxUint64/2 {
		t.Fatalf("full year at 100%% APR should equal principal, got %d", got)
	}
}

func TestProRataBps(t *testing.T) {
	cases := []struct {
		contribution, total uint64
		want                uint32
	}{
		{600_000, 1_000_000, 6000},
		{400_000, 1_000_000, 4000},
		{1, 3, 3333}, // floor
		{1_000_000, 1_000_000, 10_000},
	}
	for _, c := range cases {
		got, err := ProRataBps(c.contribution, c.total)
		if err != nil {
			t.Fatalf("ProRataBps(%d,%d): %v", c.contribution, c.total, err)
		}
		if got != c.want {
			t.Fatalf("ProRataBps(%d,%d) = %d, want %d", c.contribution, c.total, got, c.want)
		}
	}
	if _, err := ProRataBps(2, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("contribution > total must fail, got %v", err)
	}
	if _, err := ProRataBps(1, 0); !errors.Is(err, ErrOverflow) {
		t.Fatalf("zero total must fail, got %v", err)
	}
}

func TestShareOf(t *testing.T) {
	got, err := ShareOf(500_000, 6000)
	if err != nil || got != 300_000 {
		t.Fatalf("ShareOf = %d, %v", got, err)
	}
	// rounds down
	got, err = ShareOf(100, 3333)
	if err != nil || got != 33 {
		t.Fatalf("ShareOf floor = %d, %v", got, err)
	}
}
