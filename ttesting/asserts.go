// Package ttesting contains small assertion helpers shared by the tests of
// this module. Each assertion runs as its own subtest, so failures are
// reported under a readable name.
package ttesting

import (
	"image/color"
	"testing"

	"github.com/pkg/errors"
)

func AssertEqualInt(t *testing.T, name string, got, want int) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32(t *testing.T, name string, got, want uint32) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	})
}

func AssertEqualUint32s(t *testing.T, name string, got, want []uint32) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if len(got) != len(want) {
			t.Fatalf("got %v; want %v", got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("got %v; want %v (differs at %d)", got, want, i)
			}
		}
	})
}

// AssertEqualColor compares colors by their non-premultiplied 8-bit RGBA
// channels.
func AssertEqualColor(t *testing.T, name string, got, want color.Color) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		g := color.NRGBAModel.Convert(got).(color.NRGBA)
		w := color.NRGBAModel.Convert(want).(color.NRGBA)
		if g != w {
			t.Errorf("got %v; want %v", g, w)
		}
	})
}

// AssertErrorIs checks that err wraps target.
func AssertErrorIs(t *testing.T, name string, err, target error) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if !errors.Is(err, target) {
			t.Errorf("got error %v; want %v", err, target)
		}
	})
}
