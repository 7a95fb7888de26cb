package layout

import (
	"math"
	"testing"
)

// TestPtMmRoundTrip 验证 pt↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, pt := range samples {
		mm := pt * PtToMm
		back := mm * MmToPt
		if diff := math.Abs(back - pt); diff > 1e-9 {
			t.Fatalf("pt→mm→pt 往返误差过大: in=%gpt mm=%g back=%g diff=%g", pt, mm, back, diff)
		}
	}
}

// TestLengthPoints 覆盖 Length 在常见单位上转换到 pt 的正确性。
func TestLengthPoints(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"12", 12},
		{"12pt", 12},
		{"1in", 72},
		{"25.4mm", 72},
		{"2.54cm", 72},
		{" 10 PT ", 10},
	}
	for _, c := range cases {
		l, err := ParseLength(c.in)
		if err != nil {
			t.Fatalf("ParseLength(%q) error: %v", c.in, err)
		}
		if got := l.Points(); math.Abs(got-c.want) > 1e-9 {
			t.Fatalf("ParseLength(%q).Points() = %g, want %g", c.in, got, c.want)
		}
	}
	if _, err := ParseLength("12px"); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
	if _, err := ParseLength(""); err == nil {
		t.Fatalf("expected error for empty length")
	}
}

// TestLineHeightResolve 验证行高解析：倍数与绝对值两种语义都解析为字号倍数。
func TestLineHeightResolve(t *testing.T) {
	factor, err := ParseLineHeight("1.5x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := factor.Resolve(12); got != 1.5 {
		t.Fatalf("1.5x 解析错误: got=%g", got)
	}
	abs, err := ParseLineHeight("18pt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if abs.Kind != LineHeightAbsolute {
		t.Fatalf("18pt 应解析为绝对行高")
	}
	if got := abs.Resolve(12); math.Abs(got-1.5) > 1e-9 {
		t.Fatalf("18pt 行高在 12pt 字号下应为 1.5 倍, got=%g", got)
	}
	if _, err := ParseLineHeight("tall"); err == nil {
		t.Fatalf("expected error for invalid line height")
	}
}
