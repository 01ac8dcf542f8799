package curve

// Floor returns the smallest level m in [1,255] that stays nonzero after a
// truncating color-correction scale by factor, i.e. m*factor/255 >= 1.
//
// A zero factor blanks the channel regardless of level, so there is nothing
// to protect and the floor is 1.
func Floor(factor uint8) uint8 {
	if factor == 0 {
		return 1
	}
	return uint8((255 + int(factor) - 1) / int(factor)) //nolint:gosec // result within [1,255]
}
