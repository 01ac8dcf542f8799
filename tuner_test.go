package ledgamma

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/ledgamma/internal/curve"
)

func newTestTuner(t *testing.T, opts ...TunerOption) *Tuner {
	t.Helper()
	tu, err := NewTuner(DefaultConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(tu.Close)
	return tu
}

func TestNewTuner_Defaults(t *testing.T) {
	tu := newTestTuner(t)

	assert.Equal(t, DefaultConfig(), tu.Config())
	assert.Equal(t, ModeLookup, tu.Mode())
	assert.Equal(t, uint8(255), tu.Brightness())
	assert.Equal(t, UncorrectedColor, tu.Correction())
	assert.Equal(t, NoFloors, tu.Floors())
	assert.Equal(t, 1.5, tu.DimGamma())

	g, err := tu.Gamma(ChannelG)
	require.NoError(t, err)
	assert.Equal(t, 1.75, g)

	assert.Equal(t, RGB(104, 76, 64), tu.Correct(RGB(128, 128, 128)))
}

func TestNewTuner_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GammaB = -2
	_, err := NewTuner(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, curve.ErrInvalidGamma)
}

func TestTuner_SetGamma(t *testing.T) {
	tu := newTestTuner(t)
	before := tu.Tables()

	require.NoError(t, tu.SetGamma(ChannelR, 2.2))
	g, _ := tu.Gamma(ChannelR)
	assert.Equal(t, 2.2, g)
	assert.NotSame(t, before, tu.Tables(), "tables must be rebuilt, not mutated")
	assert.Equal(t, uint8(56), tu.Tables().Forward(ChannelR)[128])
	assert.Equal(t, curve.MustBuild(1.3, 255, 255), curve.Table(before.Forward(ChannelR)),
		"old tables must stay intact for readers still holding them")

	require.NoError(t, tu.SetAllGamma(2.0))
	for _, ch := range Channels {
		g, _ := tu.Gamma(ch)
		assert.Equal(t, 2.0, g)
	}

	_, err := tu.Gamma(Channel(5))
	assert.ErrorIs(t, err, ErrInvalidChannel)
	assert.ErrorIs(t, tu.SetGamma(Channel(5), 1), ErrInvalidChannel)
}

func TestTuner_RejectedSetterKeepsState(t *testing.T) {
	tu := newTestTuner(t)
	cfg := tu.Config()
	tables := tu.Tables()

	for _, bad := range []float64{0, -1, nan(), inf()} {
		err := tu.SetGamma(ChannelG, bad)
		assert.ErrorIs(t, err, curve.ErrInvalidGamma, "gamma %v", bad)
		assert.ErrorIs(t, tu.SetDimGamma(bad), curve.ErrInvalidGamma)
		assert.ErrorIs(t, tu.SetAllGamma(bad), curve.ErrInvalidGamma)
	}
	assert.Error(t, tu.SetMode(Mode(7)))
	assert.Error(t, tu.SetCorrection(0x1000000))

	assert.Equal(t, cfg, tu.Config())
	assert.Same(t, tables, tu.Tables())
}

func TestTuner_UnchangedGammaReusesTables(t *testing.T) {
	tu := newTestTuner(t)
	tables := tu.Tables()
	dimmer := tu.Dimmer()

	require.NoError(t, tu.SetBrightness(40))
	require.NoError(t, tu.SetCorrection(0xFFB0F0))

	assert.Same(t, tables, tu.Tables())
	assert.Same(t, dimmer, tu.Dimmer())

	require.NoError(t, tu.SetDimGamma(2.0))
	assert.NotSame(t, dimmer, tu.Dimmer())
	assert.Equal(t, 2.0, tu.Dimmer().Gamma())
}

func TestTuner_SetCorrectionDerivesFloors(t *testing.T) {
	tu := newTestTuner(t)
	require.NoError(t, tu.SetCorrection(0xFF8040))
	assert.Equal(t, Correction(0xFF8040), tu.Correction())
	assert.Equal(t, Floors{1, 2, 4}, tu.Floors())

	require.NoError(t, tu.SetCorrection(UncorrectedColor))
	assert.Equal(t, NoFloors, tu.Floors())
}

func TestTuner_Brightness(t *testing.T) {
	tu := newTestTuner(t)
	require.NoError(t, tu.SetBrightness(100))
	assert.Equal(t, uint8(101), tu.AdjustBrightness(1))
	assert.Equal(t, uint8(99), tu.AdjustBrightness(-2))

	require.NoError(t, tu.SetBrightness(255))
	assert.Equal(t, uint8(1), tu.AdjustBrightness(2), "brightness wraps like an 8-bit counter")
	assert.Equal(t, uint8(255), tu.AdjustBrightness(-2))
}

func TestTuner_Mode(t *testing.T) {
	tu := newTestTuner(t)
	_, ok := tu.Corrector().(LookupCorrector)
	assert.True(t, ok)

	assert.Equal(t, ModeClosedForm, tu.ToggleMode())
	_, ok = tu.Corrector().(ClosedFormCorrector)
	assert.True(t, ok)

	// Both strategies give the same pixels.
	p := RGB(77, 150, 3)
	closed := tu.Correct(p)
	assert.Equal(t, ModeLookup, tu.ToggleMode())
	assert.Equal(t, closed, tu.Correct(p))

	require.NoError(t, tu.SetMode(ModeClosedForm))
	assert.Equal(t, ModeClosedForm, tu.Mode())
}

func TestTuner_SetPixelAndBlend(t *testing.T) {
	tu := newTestTuner(t)
	require.NoError(t, tu.SetBrightness(0))

	p, aux := tu.SetPixel(RGB(128, 128, 128), 128)
	assert.Equal(t, RGB(37, 27, 23), p)
	assert.Equal(t, uint8(11), aux)

	a, b := RGB(104, 76, 64), White
	assert.Equal(t, Blend(a, b, 90, tu.Tables()), tu.Blend(a, b, 90))
}

func TestTuner_Process(t *testing.T) {
	tests := []struct {
		name       string
		brightness uint8
		correction Correction
		in         Pixel
		aux        []uint8
		want       Pixel
		wantAux    uint8
	}{
		{"full brightness", 255, UncorrectedColor, RGB(128, 128, 128), nil, RGB(104, 76, 64), 0},
		{"half brightness", 128, UncorrectedColor, RGB(128, 128, 128), nil, RGB(37, 27, 23), 0},
		{"floors engage", 64, 0xFF8040, RGB(10, 10, 10), nil, RGB(1, 0, 0), 0},
		{"floors raise", 10, 0xFF8040, White, nil, RGB(2, 2, 4), 0},
		{"aux full", 255, UncorrectedColor, RGB(128, 128, 128), []uint8{255}, RGB(104, 76, 64), 31},
		{"aux per pixel", 255, UncorrectedColor, RGB(128, 128, 128), []uint8{128}, RGB(37, 27, 23), 31},
		{"aux off", 255, UncorrectedColor, White, []uint8{0}, Black, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tu := newTestTuner(t)
			require.NoError(t, tu.SetBrightness(tt.brightness))
			require.NoError(t, tu.SetCorrection(tt.correction))

			f := Frame{Pixels: []Pixel{tt.in}, Aux: tt.aux}
			require.NoError(t, tu.Process(f))
			assert.Equal(t, tt.want, f.Pixels[0])
			if tt.aux != nil {
				assert.Equal(t, tt.wantAux, f.Aux[0])
			}
		})
	}
}

func TestTuner_ProcessRejectsBadAux(t *testing.T) {
	tu := newTestTuner(t)
	f := Frame{Pixels: make([]Pixel, 4), Aux: make([]uint8, 3)}
	assert.ErrorIs(t, tu.Process(f), ErrAuxLength)
}

func TestTuner_ProcessParallelMatchesSequential(t *testing.T) {
	seq := newTestTuner(t)
	par := newTestTuner(t, WithWorkers(4))
	for _, tu := range []*Tuner{seq, par} {
		require.NoError(t, tu.SetCorrection(0x80C040))
		require.NoError(t, tu.SetBrightness(90))
	}

	a := Frame{Pixels: randomPixels(5000, 3), Aux: make([]uint8, 5000)}
	for i := range a.Aux {
		a.Aux[i] = uint8(i)
	}
	b := a.Clone()

	require.NoError(t, seq.Process(a))
	require.NoError(t, par.Process(b))
	assert.Equal(t, a, b)
}

func TestTuner_EnforceFloors(t *testing.T) {
	tu := newTestTuner(t, WithWorkers(-1))
	require.NoError(t, tu.SetCorrection(0xFF8040))

	pixels := []Pixel{RGB(1, 1, 1), Black, RGB(0, 3, 200)}
	tu.EnforceFloors(pixels)
	assert.Equal(t, []Pixel{RGB(1, 2, 4), Black, RGB(0, 3, 200)}, pixels)
}

func TestTuner_CloseKeepsWorking(t *testing.T) {
	tu := newTestTuner(t, WithWorkers(3))
	tu.Close()

	f := NewFrame(2000, false)
	f.Fill(White)
	require.NoError(t, tu.Process(f))
	assert.Equal(t, White, f.Pixels[1999])
}

func TestTuner_WithTables(t *testing.T) {
	id := [256]uint8(curve.Identity())
	tables, err := ExternalTables([NumChannels]*[256]uint8{&id, &id, &id}, [NumChannels]*[256]uint8{})
	require.NoError(t, err)

	tu := newTestTuner(t, WithTables(tables))
	assert.Same(t, tables, tu.Tables())
	assert.Equal(t, RGB(128, 128, 128), tu.Correct(RGB(128, 128, 128)))

	// Gamma changes reach the closed-form strategy only.
	require.NoError(t, tu.SetGamma(ChannelR, 2.2))
	assert.Same(t, tables, tu.Tables())
	require.NoError(t, tu.SetMode(ModeClosedForm))
	assert.Equal(t, uint8(56), tu.Correct(RGB(128, 0, 0)).R)
}

func TestTuner_Dump(t *testing.T) {
	tu := newTestTuner(t)

	var buf bytes.Buffer
	require.NoError(t, tu.Dump(&buf, true))
	out := buf.String()
	for _, name := range []string{"gammaR[]", "reverseGammaR[]", "gammaG[]", "reverseGammaG[]", "gammaB[]", "reverseGammaB[]"} {
		assert.Contains(t, out, "const uint8_t PROGMEM "+name)
	}
	assert.Less(t, strings.Index(out, "gammaR[]"), strings.Index(out, "gammaG[]"))

	buf.Reset()
	require.NoError(t, tu.Dump(&buf, false))
	assert.NotContains(t, buf.String(), "reverseGamma")
	assert.Equal(t, 3, strings.Count(buf.String(), "PROGMEM"))
}

func TestDumpGamma(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DumpGamma(&buf, 1.5, 255, 31, "Dim", false))
	assert.True(t, strings.HasPrefix(buf.String(), "const uint8_t PROGMEM gammaDim[] = {\n  0,1,1,"))
	assert.True(t, strings.HasSuffix(buf.String(), ",31 };\n\n"))

	assert.ErrorIs(t, DumpGamma(&buf, 0, 255, 255, "X", true), curve.ErrInvalidGamma)
}

// TestTuner_ConcurrentReaders checks that frames processed while the
// parameters change are always processed with one consistent snapshot.
func TestTuner_ConcurrentReaders(t *testing.T) {
	tu := newTestTuner(t, WithWorkers(2))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 1)

	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				f := NewFrame(1024, false)
				f.Fill(RGB(128, 128, 128))
				if err := tu.Process(f); err != nil {
					select {
					case errs <- err.Error():
					default:
					}
					return
				}
				for _, p := range f.Pixels {
					if p != f.Pixels[0] {
						select {
						case errs <- "frame mixes two parameter sets":
						default:
						}
						return
					}
				}
			}
		}()
	}

	for i := range 200 {
		_ = tu.SetGamma(Channels[i%NumChannels], 1.0+float64(i%20)/10)
		_ = tu.SetBrightness(uint8(i))
		_ = tu.SetCorrection(Correction(0xFF0000 | i<<8 | i))
	}
	close(stop)
	wg.Wait()

	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
}

func TestTuner_ProcessDimsOnce(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Brightness = 128
	tu, err := NewTuner(cfg)
	require.NoError(t, err)
	t.Cleanup(tu.Close)

	for _, in := range []Pixel{White, RGB(128, 128, 128), RGB(7, 200, 90)} {
		want, _ := tu.Dimmer().Scale(tu.Correct(in), 128)

		f := NewFrame(1, true)
		f.Pixels[0] = in
		require.NoError(t, tu.Process(f))
		assert.Equal(t, want, f.Pixels[0], "channels carry the dimming for %v", in)
		assert.Equal(t, uint8(AuxMax), f.Aux[0], "aux left at full for %v", in)
		assert.Equal(t, want, f.Displayed(0), "displayed dims once for %v", in)
	}
}

func TestTuner_ConcurrentToggles(t *testing.T) {
	tu := newTestTuner(t)

	const toggles = 64
	var wg sync.WaitGroup
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tu.ToggleMode()
		}()
	}
	wg.Wait()
	assert.Equal(t, ModeLookup, tu.Mode(), "an even number of toggles returns to lookup")
}

func TestTuner_SetCorrectionLogsPublishedFloors(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	tu := newTestTuner(t)
	require.NoError(t, tu.SetCorrection(0xFF8040))

	out := buf.String()
	assert.Contains(t, out, "correction=0xFF8040")
	assert.Contains(t, out, "floors.r=1 floors.g=2 floors.b=4")
}
