package ledgamma

// TunerOption configures a Tuner during creation.
//
// Example:
//
//	// Tables compiled into the program, frame pass on 4 goroutines
//	tables, _ := ledgamma.ExternalTables(fwd, inv)
//	tu, _ := ledgamma.NewTuner(cfg, ledgamma.WithTables(tables), ledgamma.WithWorkers(4))
type TunerOption func(*tunerOptions)

// tunerOptions holds optional configuration for Tuner creation.
type tunerOptions struct {
	tables  *Tables
	workers int
}

// defaultOptions returns the default tuner options.
func defaultOptions() tunerOptions {
	return tunerOptions{
		tables:  nil, // built from the config gammas
		workers: 1,   // frame pass on the calling goroutine
	}
}

// WithTables makes the Tuner correct through the given tables in lookup
// mode instead of building them from the configured gammas.
//
// Gamma setters still update the closed-form strategy, so toggling modes
// compares the supplied tables against the live exponents.
func WithTables(t *Tables) TunerOption {
	return func(o *tunerOptions) {
		o.tables = t
	}
}

// WithWorkers sets the number of goroutines used by Process. With 0 or 1
// frames are processed on the calling goroutine.
//
// Use -1 for GOMAXPROCS.
func WithWorkers(n int) TunerOption {
	return func(o *tunerOptions) {
		o.workers = n
	}
}
