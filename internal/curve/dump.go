package curve

import (
	"bufio"
	"io"
	"strconv"
)

// perLine is the number of entries written per source line.
const perLine = 16

// WriteTables writes fwd (and inv, when non-nil) as C array literals that
// can be pasted into firmware as constant tables.
//
// The arrays are named gamma<suffix> and reverseGamma<suffix>.
func WriteTables(w io.Writer, suffix string, fwd Table, inv *Table) error {
	bw := bufio.NewWriter(w)
	writeArray(bw, "gamma"+suffix, &fwd)
	if inv != nil {
		writeArray(bw, "reverseGamma"+suffix, inv)
	}
	return bw.Flush()
}

func writeArray(bw *bufio.Writer, name string, t *Table) {
	var buf [4]byte
	bw.WriteString("const uint8_t PROGMEM ")
	bw.WriteString(name)
	bw.WriteString("[] = {")
	for i, v := range t {
		if i > 0 {
			bw.WriteByte(',')
		}
		if i%perLine == 0 {
			bw.WriteString("\n  ")
		}
		bw.Write(strconv.AppendUint(buf[:0], uint64(v), 10))
	}
	bw.WriteString(" };\n\n")
}
