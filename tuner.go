package ledgamma

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gogpu/ledgamma/internal/blend"
	"github.com/gogpu/ledgamma/internal/curve"
	"github.com/gogpu/ledgamma/internal/parallel"
)

// Tuner owns the live tuning parameters and everything derived from them.
//
// Each change builds a complete new snapshot (tables, floors, dimmer,
// corrector) and then publishes it with a single atomic store. Readers load
// one snapshot per call, so a frame is always processed with either the
// old or the new parameters, never a mix. Setters are serialized; readers
// never block.
//
// A Tuner is the getter/setter surface an interactive tuning shell drives.
// It does not parse commands or talk to hardware.
type Tuner struct {
	mu       sync.Mutex // serializes setters
	snap     atomic.Pointer[snapshot]
	external *Tables
	pool     *parallel.WorkerPool
}

// snapshot is an immutable, fully derived view of a Config.
type snapshot struct {
	cfg       Config
	tables    *Tables
	closed    ClosedFormCorrector
	corrector Corrector
	dimmer    *Dimmer
	floors    Floors
}

// NewTuner validates cfg and builds the initial tables.
func NewTuner(cfg Config, opts ...TunerOption) (*Tuner, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tuner{external: o.tables}
	s, err := t.derive(nil, cfg)
	if err != nil {
		return nil, err
	}
	t.snap.Store(s)

	switch {
	case o.workers < 0:
		t.pool = parallel.NewWorkerPool(0)
	case o.workers > 1:
		t.pool = parallel.NewWorkerPool(o.workers)
	}

	Logger().Debug("ledgamma: tuner ready",
		"config", cfg, "external_tables", o.tables != nil)
	return t, nil
}

// derive builds a snapshot for cfg, reusing whatever prev already computed
// for unchanged parameters.
func (t *Tuner) derive(prev *snapshot, cfg Config) (*snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &snapshot{
		cfg:    cfg,
		closed: ClosedFormCorrector{Gamma: cfg.Gammas()},
		floors: cfg.Correction.Floors(),
	}

	switch {
	case t.external != nil:
		s.tables = t.external
	case prev != nil && prev.cfg.Gammas() == cfg.Gammas():
		s.tables = prev.tables
	default:
		tables, err := NewTables(cfg.Gammas())
		if err != nil {
			return nil, err
		}
		s.tables = tables
		Logger().Debug("ledgamma: gamma tables rebuilt", "gammas", cfg.Gammas())
	}

	if prev != nil && prev.cfg.GammaDim == cfg.GammaDim {
		s.dimmer = prev.dimmer
	} else {
		d, err := NewDimmer(cfg.GammaDim)
		if err != nil {
			return nil, err
		}
		s.dimmer = d
	}

	if cfg.Mode == ModeClosedForm {
		s.corrector = s.closed
	} else {
		s.corrector = LookupCorrector{Tables: s.tables}
	}
	return s, nil
}

// update applies fn to a copy of the current config and publishes the
// result, which it also returns. On error the current snapshot stays in
// place.
func (t *Tuner) update(what string, fn func(*Config)) (*snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.snap.Load()
	cfg := prev.cfg
	fn(&cfg)

	s, err := t.derive(prev, cfg)
	if err != nil {
		Logger().Warn("ledgamma: rejected "+what, "err", err, "config", cfg)
		return nil, err
	}
	t.snap.Store(s)
	return s, nil
}

// set is update for setters that only report the error.
func (t *Tuner) set(what string, fn func(*Config)) error {
	_, err := t.update(what, fn)
	return err
}

func (t *Tuner) load() *snapshot {
	return t.snap.Load()
}

// Close releases the worker pool, if any. The Tuner stays usable and
// processes frames on the calling goroutine afterwards.
func (t *Tuner) Close() {
	if t.pool != nil {
		t.pool.Close()
	}
}

// Config returns a copy of the current parameters.
func (t *Tuner) Config() Config {
	return t.load().cfg
}

// SetConfig replaces every parameter at once.
func (t *Tuner) SetConfig(cfg Config) error {
	return t.set("config", func(c *Config) { *c = cfg })
}

// Gamma returns one channel's gamma.
func (t *Tuner) Gamma(ch Channel) (float64, error) {
	if !ch.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannel, uint8(ch))
	}
	return t.load().cfg.Gamma(ch), nil
}

// SetGamma changes one channel's gamma and rebuilds its tables.
func (t *Tuner) SetGamma(ch Channel, gamma float64) error {
	if !ch.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidChannel, uint8(ch))
	}
	return t.set("gamma", func(c *Config) { c.setGamma(ch, gamma) })
}

// SetAllGamma sets the same gamma on every channel.
func (t *Tuner) SetAllGamma(gamma float64) error {
	return t.set("gamma", func(c *Config) {
		c.GammaR, c.GammaG, c.GammaB = gamma, gamma, gamma
	})
}

// DimGamma returns the dimming gamma.
func (t *Tuner) DimGamma() float64 {
	return t.load().cfg.GammaDim
}

// SetDimGamma changes the dimming gamma.
func (t *Tuner) SetDimGamma(gamma float64) error {
	return t.set("dimming gamma", func(c *Config) { c.GammaDim = gamma })
}

// Correction returns the color-correction value.
func (t *Tuner) Correction() Correction {
	return t.load().cfg.Correction
}

// SetCorrection changes the color correction. The floors are re-derived in
// the same snapshot, so no frame ever sees floors from a stale correction.
func (t *Tuner) SetCorrection(c Correction) error {
	s, err := t.update("color correction", func(cfg *Config) { cfg.Correction = c })
	if err != nil {
		return err
	}
	Logger().Info("ledgamma: color correction changed",
		"correction", s.cfg.Correction.String(), "floors", s.floors)
	return nil
}

// Floors returns the floors derived from the current correction.
func (t *Tuner) Floors() Floors {
	return t.load().floors
}

// Brightness returns the global brightness level.
func (t *Tuner) Brightness() uint8 {
	return t.load().cfg.Brightness
}

// SetBrightness changes the global brightness level.
func (t *Tuner) SetBrightness(b uint8) error {
	return t.set("brightness", func(c *Config) { c.Brightness = b })
}

// AdjustBrightness adds delta to the brightness, wrapping like an 8-bit
// counter, and returns the new level.
func (t *Tuner) AdjustBrightness(delta int) uint8 {
	s, err := t.update("brightness", func(c *Config) {
		c.Brightness = uint8(int(c.Brightness) + delta) //nolint:gosec // 8-bit wrap, like the serial brightness keys
	})
	if err != nil {
		return t.Brightness()
	}
	return s.cfg.Brightness
}

// Mode returns the correction strategy in use.
func (t *Tuner) Mode() Mode {
	return t.load().cfg.Mode
}

// SetMode switches the correction strategy.
func (t *Tuner) SetMode(m Mode) error {
	s, err := t.update("mode", func(c *Config) { c.Mode = m })
	if err != nil {
		return err
	}
	Logger().Info("ledgamma: correction mode changed", "mode", s.cfg.Mode.String())
	return nil
}

// ToggleMode flips between lookup and closed-form correction and returns
// the new mode. Concurrent toggles each flip once.
func (t *Tuner) ToggleMode() Mode {
	s, err := t.update("mode", func(c *Config) {
		if c.Mode == ModeLookup {
			c.Mode = ModeClosedForm
		} else {
			c.Mode = ModeLookup
		}
	})
	if err != nil {
		return t.Mode()
	}
	Logger().Info("ledgamma: correction mode changed", "mode", s.cfg.Mode.String())
	return s.cfg.Mode
}

// Tables returns the lookup tables in use.
func (t *Tuner) Tables() *Tables {
	return t.load().tables
}

// Corrector returns the active correction strategy.
func (t *Tuner) Corrector() Corrector {
	return t.load().corrector
}

// Dimmer returns the active dimmer.
func (t *Tuner) Dimmer() *Dimmer {
	return t.load().dimmer
}

// Correct gamma-corrects a single pixel with the active strategy.
func (t *Tuner) Correct(p Pixel) Pixel {
	return t.load().corrector.Correct(p)
}

// SetPixel corrects p and dims it to level, returning the pixel and its aux
// brightness byte. Floors are not applied.
func (t *Tuner) SetPixel(p Pixel, level uint8) (Pixel, uint8) {
	s := t.load()
	return s.dimmer.Scale(s.corrector.Correct(p), level)
}

// Blend interpolates two corrected pixels through the active tables.
func (t *Tuner) Blend(a, b Pixel, amount uint8) Pixel {
	return Blend(a, b, amount, t.load().tables)
}

// EnforceFloors applies the current floors to pixels, splitting the work
// across the tuner's workers.
func (t *Tuner) EnforceFloors(pixels []Pixel) {
	enforceFloorsParallel(t.pool, pixels, t.load().floors)
}

// Process prepares a frame for the renderer: every pixel is gamma
// corrected, dimmed to the global brightness (scaled by the pixel's own aux
// level when f.Aux is present) and raised to the color-correction floors.
// The dimming is carried by the channels only. When f.Aux is present it is
// overwritten with AuxMax for lit pixels and 0 for pixels at level 0, so a
// renderer that honors the aux field does not dim a second time.
//
// Process returns after the whole frame is done.
func (t *Tuner) Process(f Frame) error {
	if err := f.Validate(); err != nil {
		return err
	}
	s := t.load()
	t.pool.Run(f.Len(), func(lo, hi int) {
		s.process(f.Slice(lo, hi))
	})
	return nil
}

func (s *snapshot) process(f Frame) {
	global := s.cfg.Brightness
	for i := range f.Pixels {
		level := global
		if f.Aux != nil {
			level = blend.ScaleRound(global, f.Aux[i])
		}
		f.Pixels[i], _ = s.dimmer.Scale(s.corrector.Correct(f.Pixels[i]), level)
		if f.Aux != nil {
			f.Aux[i] = channelDimmedAux(level)
		}
	}
	EnforceFloors(f.Pixels, s.floors)
}

// Dump writes the active R, G and B tables as C arrays, with their inverse
// tables when includeInverse is set.
func (t *Tuner) Dump(w io.Writer, includeInverse bool) error {
	tables := t.load().tables
	for _, ch := range Channels {
		fwd := curve.Table(tables.Forward(ch))
		var inv *curve.Table
		if includeInverse {
			it := curve.Table(tables.InverseTable(ch))
			inv = &it
		}
		if err := curve.WriteTables(w, ch.String(), fwd, inv); err != nil {
			return fmt.Errorf("ledgamma: dump %s tables: %w", ch, err)
		}
	}
	return nil
}

// DumpGamma writes the tables for an arbitrary gamma and ranges without
// touching the tuner, labeling them with suffix.
func DumpGamma(w io.Writer, gamma float64, maxIn, maxOut int, suffix string, includeInverse bool) error {
	fwd, inv, err := curve.BuildPair(gamma, maxIn, maxOut)
	if err != nil {
		return err
	}
	if !includeInverse {
		return curve.WriteTables(w, suffix, fwd, nil)
	}
	return curve.WriteTables(w, suffix, fwd, &inv)
}
