package analysis

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yyyoichi/lsb_zero/internal/lsb"
	"github.com/yyyoichi/lsb_zero/internal/sniff"
)

func TestOnesRatio(t *testing.T) {
	assert.Equal(t, 0.0, OnesRatio(nil))
	assert.Equal(t, 0.0, OnesRatio([]byte{2, 4, 6}))
	assert.Equal(t, 1.0, OnesRatio([]byte{1, 3, 255}))
	assert.InDelta(t, 0.5, OnesRatio([]byte{0, 1, 2, 3}), 1e-9)
}

func TestPairsChiSquare(t *testing.T) {
	t.Run("balanced pairs", func(t *testing.T) {
		chi, df := PairsChiSquare([]byte{10, 11, 20, 21, 30, 31})
		assert.Equal(t, 0.0, chi)
		assert.Equal(t, 2, df)
		assert.InDelta(t, 1.0, PValue(chi, df), 1e-9)
	})
	t.Run("even only", func(t *testing.T) {
		data := make([]byte, 0, 400)
		for i := range 400 {
			data = append(data, byte(i%100)*2)
		}
		chi, df := PairsChiSquare(data)
		assert.Greater(t, chi, 0.0)
		assert.Equal(t, 99, df)
		assert.Less(t, PValue(chi, df), 0.01)
	})
	t.Run("too few pairs", func(t *testing.T) {
		chi, df := PairsChiSquare([]byte{4, 4, 5})
		assert.Equal(t, 0.0, chi)
		assert.Equal(t, 0, df)
		assert.Equal(t, 0.0, PValue(chi, df))
	})
}

func TestInspect(t *testing.T) {
	carrier := make([]byte, 2000)
	copy(carrier, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})
	kind := sniff.Detect(carrier)

	r := Inspect(carrier, kind, lsb.Offset(kind))
	assert.Equal(t, 2000, r.Size)
	assert.Equal(t, "PNG", r.Kind)
	assert.Equal(t, 8, r.Offset)
	assert.Equal(t, 249, r.Capacity)
	assert.Equal(t, 0.0, r.OnesRatio)

	r = Inspect(carrier[:100], sniff.Unknown, 1024)
	assert.Equal(t, 0, r.Capacity)
	assert.Equal(t, 0.0, r.PValue)
}

func TestInspectEmbedded(t *testing.T) {
	rd := rand.New(rand.NewSource(7))
	// even values only: maximally unbalanced pairs before embedding
	carrier := make([]byte, 64*1024)
	for i := range carrier {
		carrier[i] = byte(rd.Intn(128)) * 2
	}
	before := Inspect(carrier, sniff.Unknown, 0)

	payload := make([]byte, lsb.Capacity(len(carrier), 0))
	_, _ = rd.Read(payload)
	out, err := lsb.Embed(carrier, 0, payload)
	assert.NoError(t, err)
	after := Inspect(out, sniff.Unknown, 0)

	assert.Less(t, before.PValue, 0.01)
	assert.Greater(t, after.PValue, before.PValue)
	assert.InDelta(t, 0.5, after.OnesRatio, 0.05)
}
