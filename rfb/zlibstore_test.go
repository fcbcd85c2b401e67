package rfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Concrete scenario 6 from spec.md §8: 2x1 framebuffer with indices
// [0, 1]; the stored zlib stream must contain a single block with
// LEN=0x0002, ~LEN=0xFFFD, literal bytes 00 01, and Adler-32 trailer
// 00 03 00 02.
func TestAppendStoredZlibSmallFrame(t *testing.T) {
	data := []byte{0, 1}
	out := appendStoredZlib(nil, data)

	require.Equal(t, storedZlibSize(len(data)), len(out))

	assert.Equal(t, byte(zlibCMF), out[0])
	assert.Equal(t, byte(zlibFLG), out[1])

	assert.Equal(t, byte(0x01), out[2]) // BFINAL=1, BTYPE=00
	assert.Equal(t, byte(0x02), out[3]) // LEN low
	assert.Equal(t, byte(0x00), out[4]) // LEN high
	assert.Equal(t, byte(0xFD), out[5]) // ~LEN low
	assert.Equal(t, byte(0xFF), out[6]) // ~LEN high
	assert.Equal(t, byte(0), out[7])
	assert.Equal(t, byte(1), out[8])

	trailer := out[len(out)-4:]
	assert.Equal(t, []byte{0x00, 0x03, 0x00, 0x02}, trailer)
}

// Invariant 5 from spec.md §8: every stored block has LEN + ~LEN ==
// 0xFFFF (as 16-bit), and invariant 6: LEN sums to the total input size
// with exactly one BFINAL block, the last.
func TestStoredBlocksCoverWholeInputExactlyOnce(t *testing.T) {
	sizes := []int{0, 1, 65535, 65536, 131070, 131072, 200000}
	for _, n := range sizes {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i)
		}
		out := appendStoredZlib(nil, data)

		pos := 2 // past CMF/FLG
		total := 0
		sawFinal := false
		for pos < len(out)-4 {
			require.False(t, sawFinal, "size %d: data after BFINAL block", n)
			header := out[pos]
			lenLo, lenHi := out[pos+1], out[pos+2]
			nlenLo, nlenHi := out[pos+3], out[pos+4]
			length := int(lenLo) | int(lenHi)<<8
			nlength := int(nlenLo) | int(nlenHi)<<8
			require.Equal(t, 0xFFFF, (length+nlength)&0xFFFF, "size %d", n)

			final := header&0x01 != 0
			if final {
				sawFinal = true
			}
			pos += 5 + length
			total += length
		}
		assert.True(t, sawFinal, "size %d: no final block seen", n)
		assert.Equal(t, n, total, "size %d: block lengths don't sum to input size", n)
	}
}

func TestAppendTightLengthWidths(t *testing.T) {
	one := appendTightLength(nil, 0x10)
	assert.Len(t, one, 1)

	two := appendTightLength(nil, 0x1000)
	assert.Len(t, two, 2)
	assert.Equal(t, byte(0x80|(0x1000&0x7f)), two[0])

	three := appendTightLength(nil, 0x10000)
	assert.Len(t, three, 3)
}
