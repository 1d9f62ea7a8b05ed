package decimal

import (
	"math/big"
	"testing"
)

// refSearchScale mirrors the searchScale contract with big.Int arithmetic.
func refSearchScale(lo uint64, hi uint32, scale int) int {
	cur := 0
	if scale < MaxScale {
		max96 := new(big.Int).Lsh(big.NewInt(1), 96)
		q := big96(lo, hi)
		ten := big.NewInt(10)
		for cur < maxPow64 {
			next := new(big.Int).Mul(q, ten)
			if next.Cmp(max96) >= 0 {
				break
			}
			q = next
			cur++
		}
		if lo == 0 && hi == 0 {
			cur = maxPow64
		}
		if cur > MaxScale-scale {
			cur = MaxScale - scale
		}
	}
	if cur+scale < 0 && cur != maxPow64 {
		return -1
	}
	return cur
}

func TestSearchScale(t *testing.T) {
	for i := 0; i < 20000; i++ {
		lo, hi := rnd96()
		scale := rnd.Intn(2*MaxScale+1) - MaxScale
		want := refSearchScale(lo, hi, scale)
		if got := searchScale(lo, hi, scale); got != want {
			t.Fatalf("searchScale(%#x, %#x, %d) = %d, want %d", lo, hi, scale, got, want)
		}
	}
}

func TestSearchScaleBoundaries(t *testing.T) {
	td := []struct {
		lo    uint64
		hi    uint32
		scale int
		want  int
	}{
		{0, 0, 0, 19},
		{0, 0, -28, 19},
		{1, 0, 0, 19},
		{1, 0, 28, 0},
		{11068046444225730969, 429496729, 0, 1}, // (2^96-1)/10: one more power fits
		{11068046444225730970, 429496729, 0, 0}, // one past: it does not
		{11068046444225730970, 429496729, -1, -1},
		{0xffffffffffffffff, 0xffffffff, 0, 0},
		{0xffffffffffffffff, 0xffffffff, -1, -1},
		{1, 0, 27, 1},
		{1, 0, 10, 18},
	}
	for i, d := range td {
		if got := searchScale(d.lo, d.hi, d.scale); got != d.want {
			t.Fatalf("#%d: searchScale(%d, %d, %d) = %d, want %d", i, d.lo, d.hi, d.scale, got, d.want)
		}
	}
}

func TestReduceScale(t *testing.T) {
	for i := 0; i < 10000; i++ {
		var buf [3]uint64
		hiIdx := rnd.Intn(3)
		for j := 0; j <= hiIdx; j++ {
			buf[j] = rnd.Uint64()
		}
		for hiIdx > 0 && buf[hiIdx] == 0 {
			hiIdx--
		}
		newScale := rnd.Intn(2*MaxScale) + 1
		val := new(big.Int)
		for j := hiIdx; j >= 0; j-- {
			val.Lsh(val, 64).Or(val, new(big.Int).SetUint64(buf[j]))
		}

		wantPow := newScale
		if wantPow > maxPow32 {
			wantPow = maxPow32
		}
		den := new(big.Int).SetUint64(pow10(wantPow))
		wantQ, wantR := new(big.Int).QuoRem(val, den, new(big.Int))

		idx, ns := hiIdx, newScale
		gotDen, gotRem := reduceScale(&buf, &idx, &ns)

		got := new(big.Int)
		for j := 2; j >= 0; j-- {
			got.Lsh(got, 64).Or(got, new(big.Int).SetUint64(buf[j]))
		}
		if uint64(gotDen) != pow10(wantPow) || ns != newScale-maxPow32 ||
			got.Cmp(wantQ) != 0 || uint64(gotRem) != wantR.Uint64() {
			t.Fatalf("reduceScale #%d: val=%s pow=%d: got q=%s den=%d rem=%d ns=%d",
				i, val, wantPow, got, gotDen, gotRem, ns)
		}
	}
}

func TestScaleResult(t *testing.T) {
	td := []struct {
		val       string
		scale     int
		wantVal   string // ignored on overflow
		wantScale int
	}{
		// already fits
		{"1", 0, "1", 0},
		{"79228162514264337593543950335", 5, "79228162514264337593543950335", 5},
		// 2^96, scale 1: divide by ten, round 33.6 up
		{"79228162514264337593543950336", 1, "7922816251426433759354395034", 0},
		// 2^96, scale 0: no scale left
		{"79228162514264337593543950336", 0, "", -1},
		// scale must come down to 28 even though the value fits
		{"1", 56, "0", 28},
		{"123456789012345678901234567890123456", 56, "12345679", 28},
		// exact half with an even quotient stays (tie to even)
		{"79228162514264337593543950345", 1, "7922816251426433759354395034", 0},
		// exact half with an odd quotient rounds up
		{"79228162514264337593543950355", 1, "7922816251426433759354395036", 0},
	}

	for i, d := range td {
		val, ok := new(big.Int).SetString(d.val, 10)
		if !ok {
			t.Fatal("bad test value")
		}
		var buf [3]uint64
		tmp := new(big.Int).Set(val)
		mask := new(big.Int).SetUint64(1<<64 - 1)
		for j := 0; j < 3; j++ {
			buf[j] = new(big.Int).And(tmp, mask).Uint64()
			tmp.Rsh(tmp, 64)
		}
		hiIdx := 2
		for hiIdx > 0 && buf[hiIdx] == 0 {
			hiIdx--
		}

		gotScale := scaleResult(&buf, hiIdx, d.scale)
		if gotScale != d.wantScale {
			t.Fatalf("#%d (%s, %d): scale = %d, want %d", i, d.val, d.scale, gotScale, d.wantScale)
		}
		if d.wantScale < 0 {
			continue
		}
		want, _ := new(big.Int).SetString(d.wantVal, 10)
		got := big96(buf[0], low32(buf[1]))
		if got.Cmp(want) != 0 {
			t.Fatalf("#%d (%s, %d): value = %s, want %s", i, d.val, d.scale, got, want)
		}
	}
}

func TestUpscale(t *testing.T) {
	for i := 0; i < 10000; i++ {
		lo, hi := rnd96()
		diff := rnd.Intn(2*MaxScale) + 1
		d := Decimal{lo: lo, hi: hi}
		want := new(big.Int).Mul(big96(lo, hi), new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(diff)), nil))
		if want.BitLen() > 192 {
			continue
		}

		var buf [3]uint64
		hiIdx := upscale(&buf, d, diff)
		got := new(big.Int)
		for j := 2; j >= 0; j-- {
			got.Lsh(got, 64).Or(got, new(big.Int).SetUint64(buf[j]))
		}
		if got.Cmp(want) != 0 {
			t.Fatalf("upscale #%d: (%#x,%#x)*10^%d = %s, want %s", i, lo, hi, diff, got, want)
		}
		if hiIdx > 0 && buf[hiIdx] == 0 {
			t.Fatalf("upscale #%d: hiIdx %d points at a zero word", i, hiIdx)
		}
	}
}
