package ledgamma

import (
	"errors"
	"testing"

	"github.com/gogpu/ledgamma/internal/curve"
)

func TestNewTables_InvalidGamma(t *testing.T) {
	_, err := NewTables([NumChannels]float64{2.2, 0, 2.2})
	if !errors.Is(err, curve.ErrInvalidGamma) {
		t.Errorf("NewTables() error = %v, want ErrInvalidGamma", err)
	}
}

func TestTables_CorrectInverse(t *testing.T) {
	tables := mustTables(t, [NumChannels]float64{1.0, 2.2, 2.2})
	if got := tables.Correct(RGB(128, 128, 0)); got != RGB(128, 56, 0) {
		t.Errorf("Correct() = %v", got)
	}
	if got := tables.Inverse(RGB(128, 0, 255)); got != RGB(128, 0, 255) {
		t.Errorf("Inverse() = %v", got)
	}
	if tables.Gamma(ChannelG) != 2.2 || tables.External() {
		t.Error("built tables report wrong gamma or external")
	}
}

func TestExternalTables(t *testing.T) {
	fwd := [256]uint8(curve.MustBuild(2.0, 255, 255))
	id := [256]uint8(curve.Identity())
	before := fwd

	tables, err := ExternalTables(
		[NumChannels]*[256]uint8{&fwd, &id, &fwd},
		[NumChannels]*[256]uint8{nil, &id, nil},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !tables.External() {
		t.Error("External() = false")
	}

	p := RGB(128, 128, 128)
	if got := tables.Correct(p); got.R != fwd[128] || got.G != 128 {
		t.Errorf("Correct() = %v", got)
	}
	wantInv := curve.Invert(curve.Table(fwd), 255)
	if tables.InverseTable(ChannelR) != [256]uint8(wantInv) {
		t.Error("derived inverse table differs from curve.Invert")
	}
	if tables.Forward(ChannelB) != fwd {
		t.Error("Forward(B) is not the supplied table")
	}

	Blend(RGB(1, 2, 3), RGB(200, 100, 50), 100, tables)
	if fwd != before {
		t.Error("borrowed table was modified")
	}
}

func TestExternalTables_MissingForward(t *testing.T) {
	id := [256]uint8(curve.Identity())
	_, err := ExternalTables([NumChannels]*[256]uint8{&id, nil, &id}, [NumChannels]*[256]uint8{})
	if !errors.Is(err, ErrMissingTable) {
		t.Errorf("ExternalTables() error = %v, want ErrMissingTable", err)
	}
}
