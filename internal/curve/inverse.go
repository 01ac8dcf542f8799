package curve

// Invert derives the approximate inverse of a forward table.
//
// The forward table is walked once with a cursor while the inverse index
// advances over [0,255]. Each inverse index is scaled into the forward
// table's output range (i*maxOut/255, at least 1 for i>0) and resolved as:
//
//   - a repeated target copies the previous entry;
//   - a cursor at the end of the table yields 255;
//   - a plateau (several inputs with the same output) yields the midpoint
//     of the plateau, rounded down, and the cursor skips past it;
//   - an exact match yields the cursor;
//   - otherwise the target was skipped and the closer of the two bracketing
//     inputs wins, the lower one on a tie.
//
// The result is non-decreasing. It is an exact inverse only where the
// forward table is one-to-one; at plateaus and gaps it is a best effort.
// For gamma in [1, 3] with full ranges, fwd[inv[v]] is within 2 of v.
func Invert(forward Table, maxOut int) Table {
	var inv Table
	if maxOut < 1 {
		maxOut = 1
	}
	if maxOut > 255 {
		maxOut = 255
	}

	f := 0
	last := -1
	for i := range Size {
		target := i * maxOut / 255
		if target == 0 && i > 0 {
			target = 1
		}
		if target == last {
			inv[i] = inv[i-1]
			continue
		}
		last = target

		switch {
		case f >= Size-1:
			inv[i] = 255
		case forward[f] == forward[f+1]:
			start := f
			for f < Size && forward[f] == forward[start] {
				f++
			}
			f--
			inv[i] = uint8((start + f) / 2) //nolint:gosec // both within [0,255]
			f++
		case int(forward[f]) == target:
			inv[i] = uint8(f) //nolint:gosec // f < 255
			f++
		default:
			if f > 0 && target-int(forward[f-1]) <= int(forward[f])-target {
				inv[i] = uint8(f - 1) //nolint:gosec // f-1 within [0,254]
			} else {
				inv[i] = uint8(f) //nolint:gosec // f < 255
			}
		}
	}
	return inv
}

// BuildPair builds a forward table and its inverse in one call.
func BuildPair(gamma float64, maxIn, maxOut int) (fwd, inv Table, err error) {
	fwd, err = Build(gamma, maxIn, maxOut)
	if err != nil {
		return fwd, inv, err
	}
	return fwd, Invert(fwd, maxOut), nil
}
