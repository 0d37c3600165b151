package ltl_test

import (
	"strings"
	"testing"

	"github.com/katalvlaran/ltl2nba/ltl"
)

// nestedResponse builds G (p0 -> F (p1 & X (p2 -> F ...))) with depth d.
func nestedResponse(d int) string {
	var sb strings.Builder
	for i := 0; i < d; i++ {
		sb.WriteString("G (p")
		sb.WriteByte(byte('a' + i%26))
		sb.WriteString(" -> F (")
	}
	sb.WriteString("done")
	for i := 0; i < d; i++ {
		sb.WriteString("))")
	}
	return sb.String()
}

// BenchmarkParse measures parsing of a deeply nested response formula.
func BenchmarkParse(b *testing.B) {
	text := nestedResponse(32)
	b.ReportAllocs()
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ltl.Parse(text)
	}
}

// BenchmarkNormalize measures the rewrite into the minimal basis.
func BenchmarkNormalize(b *testing.B) {
	f := ltl.MustParse(nestedResponse(32))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ltl.Normalize(f)
	}
}
