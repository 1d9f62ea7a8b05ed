package decimal

import (
	"math/big"
	"math/bits"
	"math/rand"
	"testing"
)

var rnd = rand.New(rand.NewSource(42))

func big96(lo uint64, hi uint32) *big.Int {
	z := new(big.Int).SetUint64(uint64(hi))
	z.Lsh(z, 64)
	return z.Or(z, new(big.Int).SetUint64(lo))
}

func rnd96() (lo uint64, hi uint32) {
	// Bias towards interesting word patterns: all sizes show up.
	switch rnd.Intn(4) {
	case 0:
		return rnd.Uint64() % 1000, 0
	case 1:
		return rnd.Uint64(), 0
	case 2:
		return rnd.Uint64(), rnd.Uint32() % 1000
	default:
		return rnd.Uint64(), rnd.Uint32()
	}
}

func TestDiv96By32(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo, hi := rnd96()
		den := rnd.Uint32() | 1
		wantQ, wantR := new(big.Int).QuoRem(big96(lo, hi), new(big.Int).SetUint64(uint64(den)), new(big.Int))

		gotR := div96by32(&lo, &hi, den)
		if big96(lo, hi).Cmp(wantQ) != 0 || uint64(gotR) != wantR.Uint64() {
			t.Fatalf("div96by32 #%d: got q=%s r=%d, want q=%s r=%s", i, big96(lo, hi), gotR, wantQ, wantR)
		}
	}
}

func TestMul96By32(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo, hi := rnd96()
		m := rnd.Uint32()
		want := new(big.Int).Mul(big96(lo, hi), new(big.Int).SetUint64(uint64(m)))

		over := mul96by32(&lo, &hi, m)
		got := new(big.Int).Lsh(new(big.Int).SetUint64(uint64(over)), 96)
		got.Or(got, big96(lo, hi))
		if got.Cmp(want) != 0 {
			t.Fatalf("mul96by32 #%d: got %s, want %s", i, got, want)
		}
	}
}

func TestMul96By64(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo, hi := rnd96()
		m := pow10s[rnd.Intn(20)]
		want := new(big.Int).Mul(big96(lo, hi), new(big.Int).SetUint64(m))

		over := mul96by64(&lo, &hi, m)
		got := new(big.Int).Lsh(new(big.Int).SetUint64(over), 96)
		got.Or(got, big96(lo, hi))
		if got.Cmp(want) != 0 {
			t.Fatalf("mul96by64 #%d: got %s, want %s", i, got, want)
		}
	}
}

func TestShl128(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo, hi := rnd.Uint64(), rnd.Uint64()
		s := uint(rnd.Intn(64))
		want := new(big.Int).SetUint64(hi)
		want.Lsh(want, 64).Or(want, new(big.Int).SetUint64(lo))
		want.Lsh(want, s)
		want.Rsh(want, 64)
		want.And(want, new(big.Int).SetUint64(1<<64-1))

		if got := shl128(lo, hi, s); got != want.Uint64() {
			t.Fatalf("shl128(%#x, %#x, %d) = %#x, want %#x", lo, hi, s, got, want.Uint64())
		}
	}
}

func TestNeg96(t *testing.T) {
	mod := new(big.Int).Lsh(big.NewInt(1), 96)
	for i := 0; i < 10000; i++ {
		lo, hi := rnd96()
		want := new(big.Int).Sub(mod, big96(lo, hi))
		want.Mod(want, mod)

		gl, gh := neg96(lo, hi)
		if big96(gl, gh).Cmp(want) != 0 {
			t.Fatalf("neg96(%#x, %#x) = %s, want %s", lo, hi, big96(gl, gh), want)
		}
	}
}

func TestAddSub96Roundtrip(t *testing.T) {
	for i := 0; i < 10000; i++ {
		alo, ahi := rnd96()
		blo := rnd.Uint64()
		slo, shi, carry := add96(alo, ahi, blo)
		rlo, rhi, borrow := sub96(slo, shi, blo, 0)
		if rlo != alo || rhi != ahi || borrow != carry {
			t.Fatalf("add96/sub96 roundtrip #%d: a=(%#x,%#x) b=%#x", i, alo, ahi, blo)
		}
	}
}

func TestDiv64By32InPlace(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo := rnd.Uint32()
		den := rnd.Uint32() | 1
		hi := rnd.Uint32() % den
		n := uint64(hi)<<32 | uint64(lo)
		wantQ, wantR := n/uint64(den), n%uint64(den)

		l := lo
		r := div64by32InPlace(&l, hi, den)
		if uint64(l) != wantQ || uint64(r) != wantR {
			t.Fatalf("div64by32InPlace: got q=%d r=%d, want q=%d r=%d", l, r, wantQ, wantR)
		}
	}
}

func TestMsb(t *testing.T) {
	for i := 0; i < 64; i++ {
		x := uint64(1) << uint(i)
		if got := msb64(x); got != i {
			t.Fatalf("msb64(1<<%d) = %d", i, got)
		}
		if i < 32 {
			if got := msb32(uint32(x)); got != i {
				t.Fatalf("msb32(1<<%d) = %d", i, got)
			}
		}
	}
	if msb64(0xdeadbeef00000000) != 63-bits.LeadingZeros64(0xdeadbeef00000000) {
		t.Fatal("msb64 disagrees with bits.LeadingZeros64")
	}
}
