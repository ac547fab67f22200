package main

import (
	"testing"
)

func TestScan_FullyConvertibleYear(t *testing.T) {
	r := scan(2017, 2017, 12)

	if r.Total != 365 {
		t.Errorf("Total = %d, want 365", r.Total)
	}
	if r.Failed != 0 || len(r.Gaps) != 0 {
		t.Errorf("Failed = %d, gaps = %v, want none", r.Failed, r.Gaps)
	}
}

func TestScan_ReformGap(t *testing.T) {
	r := scan(1940, 1940, 12)

	if len(r.Gaps) != 1 {
		t.Fatalf("gaps = %v, want exactly one", r.Gaps)
	}
	g := r.Gaps[0]
	if g.From != "1940-01-01" || g.To != "1940-03-31" {
		t.Errorf("gap = %s..%s, want 1940-01-01..1940-03-31", g.From, g.To)
	}
	if g.Days != 91 {
		t.Errorf("gap days = %d, want 91 (leap year)", g.Days)
	}
	if g.Kind != kindOutOfRange {
		t.Errorf("gap kind = %q, want %q", g.Kind, kindOutOfRange)
	}
	if r.Converted+r.Failed != r.Total {
		t.Errorf("Converted %d + Failed %d != Total %d", r.Converted, r.Failed, r.Total)
	}
}

func TestScan_BeyondTables(t *testing.T) {
	r := scan(2078, 2078, 12)

	if r.Converted != 0 {
		t.Errorf("Converted = %d, want 0", r.Converted)
	}
	if len(r.Gaps) != 1 || r.Gaps[0].Days != 365 {
		t.Errorf("gaps = %v, want one gap of 365 days", r.Gaps)
	}
}
