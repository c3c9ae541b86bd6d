// Package analysis summarises the least significant bit plane of a carrier.
//
// The chi-square pairs-of-values test compares the counts of each byte
// value pair (2k, 2k+1). Sequential LSB embedding of random-looking data
// drives the two counts of every pair towards each other, so a p-value
// close to 1 suggests the region already carries a payload.
package analysis

import (
	"github.com/yyyoichi/lsb_zero/internal/lsb"
	"github.com/yyyoichi/lsb_zero/internal/sniff"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

type Report struct {
	Size      int     `yaml:"size"`
	Kind      string  `yaml:"kind"`
	Offset    int     `yaml:"offset"`
	Capacity  int     `yaml:"capacity"`
	Codec     string  `yaml:"codec,omitempty"`
	OnesRatio float64 `yaml:"ones_ratio"`
	ChiSquare float64 `yaml:"chi_square"`
	Freedom   int     `yaml:"degrees_of_freedom"`
	PValue    float64 `yaml:"p_value"`
}

// Inspect analyses the bytes of carrier from offset on.
func Inspect(carrier []byte, kind sniff.Kind, offset int) Report {
	r := Report{
		Size:     len(carrier),
		Kind:     kind.String(),
		Offset:   offset,
		Capacity: lsb.Capacity(len(carrier), offset),
	}
	if offset < 0 || offset >= len(carrier) {
		return r
	}
	region := carrier[offset:]
	r.OnesRatio = OnesRatio(region)
	r.ChiSquare, r.Freedom = PairsChiSquare(region)
	r.PValue = PValue(r.ChiSquare, r.Freedom)
	return r
}

// OnesRatio is the fraction of bytes in data whose lowest bit is set.
func OnesRatio(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}
	bits := make([]float64, len(data))
	for i, v := range data {
		bits[i] = float64(v & 1)
	}
	return stat.Mean(bits, nil)
}

// PairsChiSquare returns the pairs-of-values statistic of data and its
// degrees of freedom. Pairs that never occur are left out.
func PairsChiSquare(data []byte) (chi float64, freedom int) {
	var hist [256]float64
	for _, v := range data {
		hist[v]++
	}
	pairs := 0
	for k := 0; k < 128; k++ {
		even, odd := hist[2*k], hist[2*k+1]
		expected := (even + odd) / 2
		if expected == 0 {
			continue
		}
		d := even - expected
		chi += d * d / expected
		pairs++
	}
	if pairs < 2 {
		return 0, 0
	}
	return chi, pairs - 1
}

// PValue is the probability of a statistic at least as large as chi when
// the pair counts are equal in expectation.
func PValue(chi float64, freedom int) float64 {
	if freedom < 1 {
		return 0
	}
	return distuv.ChiSquared{K: float64(freedom)}.Survival(chi)
}
