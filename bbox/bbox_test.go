package bbox

import (
	"testing"

	"github.com/oskar-imaging/uvwsched/geometry"
)

func testBaseline() *geometry.BaselineData {
	return &geometry.BaselineData{
		TimeCount: 2,
		FreqCount: 2,
		UVWM:      [][3]float64{{10, -5, 1}, {20, 5, 2}},
		Freq:      []float64{geometry.SpeedOfLight, 2 * geometry.SpeedOfLight},
	}
}

func TestBoundingBoxCornersAndScale(t *testing.T) {
	bl := testBaseline()
	min, max := BoundingBox(bl, false, 0, 1, 0, 1)

	// u ranges over {10,20} x {1,2}: corners are 10,20,20,40.
	if min[0] != 10 || max[0] != 40 {
		t.Errorf("u range = [%g, %g], want [10, 40]", min[0], max[0])
	}
	// v ranges over {-5,5} x {1,2}: corners are -5,-10,5,10.
	if min[1] != -10 || max[1] != 10 {
		t.Errorf("v range = [%g, %g], want [-10, 10]", min[1], max[1])
	}
}

func TestBoundingBoxNegate(t *testing.T) {
	bl := testBaseline()
	min, max := BoundingBox(bl, false, 0, 1, 0, 1)
	negMin, negMax := BoundingBox(bl, true, 0, 1, 0, 1)

	for i := 0; i < 3; i++ {
		if negMin[i] != -max[i] || negMax[i] != -min[i] {
			t.Errorf("axis %d: negated box = [%g, %g], want [%g, %g]", i, negMin[i], negMax[i], -max[i], -min[i])
		}
	}
}

func TestBoundingSubgridsRounding(t *testing.T) {
	bl := testBaseline()
	sgMin, sgMax := BoundingSubgrids(bl, false, 10, 1)

	wantMin, wantMax := BoundingBox(bl, false, 0, 1, 0, 1)
	for i := 0; i < 2; i++ {
		if sgMin[i] != roundToInt(wantMin[i]/10) {
			t.Errorf("axis %d: sgMin = %d, want %d", i, sgMin[i], roundToInt(wantMin[i]/10))
		}
		if sgMax[i] != roundToInt(wantMax[i]/10) {
			t.Errorf("axis %d: sgMax = %d, want %d", i, sgMax[i], roundToInt(wantMax[i]/10))
		}
	}
}

func TestRoundToInt(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0}, {0.4, 0}, {0.5, 1}, {1.5, 2}, {-0.4, 0}, {-0.5, -1}, {-1.5, -2},
	}
	for _, tt := range tests {
		if got := roundToInt(tt.in); got != tt.want {
			t.Errorf("roundToInt(%g) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
