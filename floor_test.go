package ledgamma

import (
	"math/rand/v2"
	"testing"

	"github.com/gogpu/ledgamma/internal/parallel"
)

// allFloorCombos covers every combination of channels with an active floor.
var allFloorCombos = []Floors{
	{1, 1, 1}, {3, 1, 1}, {1, 5, 1}, {3, 5, 1},
	{1, 1, 7}, {3, 1, 7}, {1, 5, 7}, {3, 5, 7},
}

func randomPixels(n int, seed uint64) []Pixel {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	pixels := make([]Pixel, n)
	for i := range pixels {
		// Bias toward small values so floors actually engage.
		pixels[i] = RGB(uint8(r.IntN(12)), uint8(r.IntN(256)), uint8(r.IntN(9)))
	}
	return pixels
}

func wantFloored(v, m uint8) uint8 {
	switch {
	case v == 0:
		return 0
	case v < m:
		return m
	default:
		return v
	}
}

func TestEnforceFloors_AllCombinations(t *testing.T) {
	for _, f := range allFloorCombos {
		pixels := randomPixels(2000, uint64(f.R)<<16|uint64(f.G)<<8|uint64(f.B))
		orig := append([]Pixel(nil), pixels...)

		EnforceFloors(pixels, f)

		for i, p := range pixels {
			o := orig[i]
			want := RGB(wantFloored(o.R, f.R), wantFloored(o.G, f.G), wantFloored(o.B, f.B))
			if p != want {
				t.Fatalf("floors %+v: pixel %v -> %v, want %v", f, o, p, want)
			}
			if p != f.Apply(o) {
				t.Fatalf("floors %+v: EnforceFloors and Apply disagree on %v", f, o)
			}
		}
	}
}

func TestEnforceFloors_Idempotent(t *testing.T) {
	for _, f := range allFloorCombos {
		once := randomPixels(500, 42)
		EnforceFloors(once, f)
		twice := append([]Pixel(nil), once...)
		EnforceFloors(twice, f)
		for i := range once {
			if once[i] != twice[i] {
				t.Fatalf("floors %+v: second pass changed %v to %v", f, once[i], twice[i])
			}
		}
	}
}

func TestEnforceFloors_EveryValue(t *testing.T) {
	m := uint8(4)
	pixels := make([]Pixel, 256)
	for v := range pixels {
		pixels[v] = RGB(uint8(v), uint8(v), uint8(v))
	}
	EnforceFloors(pixels, Floors{m, m, m})
	for v, p := range pixels {
		want := wantFloored(uint8(v), m)
		if p.R != want || p.G != want || p.B != want {
			t.Errorf("v=%d: got %v, want %d", v, p, want)
		}
	}
}

func TestEnforceFloorsParallel_MatchesSequential(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	f := Floors{2, 3, 4}
	seq := randomPixels(10000, 7)
	par := append([]Pixel(nil), seq...)

	EnforceFloors(seq, f)
	enforceFloorsParallel(pool, par, f)

	for i := range seq {
		if seq[i] != par[i] {
			t.Fatalf("pixel %d: sequential %v, parallel %v", i, seq[i], par[i])
		}
	}
}

func BenchmarkEnforceFloors(b *testing.B) {
	for _, tc := range []struct {
		name string
		f    Floors
	}{
		{"none", NoFloors},
		{"blue", Floors{1, 1, 4}},
		{"all", Floors{2, 3, 4}},
	} {
		b.Run(tc.name, func(b *testing.B) {
			pixels := randomPixels(4096, 1)
			b.SetBytes(int64(len(pixels) * 3))
			b.ResetTimer()
			for b.Loop() {
				EnforceFloors(pixels, tc.f)
			}
		})
	}
}
