// Package histo implements simple histograms, used to bin reflections into resolution shells.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Values that fall outside the dividers are not counted.
type Data struct {
	normalized bool
	total      float64
	dividers   []float64
	histo      []float64
}

//NewData returns a new histogram from the dividers and rawdata given. rawdata can be nil, in which case an empty
//histogram is created. weights can be nil (all the points weight 1) or have the same length as rawdata.
//dividers must be strictly increasing and have at least 2 elements, otherwise NewData panics.
func NewData(dividers, rawdata, weights []float64) *Data {
	if len(dividers) < 2 {
		panic("goHKL/histo.NewData: at least 2 dividers are needed")
	}
	for i := 1; i < len(dividers); i++ {
		if dividers[i] <= dividers[i-1] {
			panic("goHKL/histo.NewData: dividers must be strictly increasing")
		}
	}
	d := new(Data)
	//I prefer to copy the slice to avoid somebody changing it from outside
	d.dividers = make([]float64, len(dividers))
	copy(d.dividers, dividers)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata, weights)
	}
	return d
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Normalized bool      `json:"normalized"`
		Total      float64   `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a struct {
		Normalized bool      `json:"normalized"`
		Total      float64   `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Histo      []float64 `json:"histo"`
	}
	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("goHKL/histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}

//String prints a -hopefully- pretty string representation of
//the histogram. The representation uses 3 lines of text.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, Total: %g\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// Len returns the number of bins.
func (D *Data) Len() int {
	return len(D.histo)
}

// Total returns the (weighted) number of points in the histogram.
func (D *Data) Total() float64 {
	return D.total
}

//AddData adds the given data point with the given weight.
func (D *Data) AddData(point, weight float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	//Values outside the dividers are just omitted.
	i := sort.SearchFloat64s(D.dividers, point)
	if i < len(D.dividers) && D.dividers[i] == point {
		i++ //the bins include their lower limit
	}
	if i > 0 && i < len(D.dividers) {
		D.histo[i-1] += weight
		D.total += weight
	}
	if norma {
		D.Normalize()
	}
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize normalizes the histogram so its bins sum to 1.
func (D *Data) Normalize() {
	D.normaunnorma(true)
}

//UnNormalize un-normalizes the histogram
func (D *Data) UnNormalize() {
	D.normaunnorma(false)
}

//normalizes or un-normalizes the histogram depending
//on whether normalize is true
func (D *Data) normaunnorma(normalize bool) {
	if D.total <= 0 || D.normalized == normalize {
		return
	}
	n := D.total
	if normalize {
		n = 1 / D.total
	}
	D.normalized = normalize
	floats.Scale(n, D.histo)
}

//Dividers returns a copy of the dividers of the histogram
func (D *Data) Dividers() []float64 {
	d := make([]float64, len(D.dividers))
	copy(d, D.dividers)
	return d
}

//View returns the bins of the histogram. They are not copied.
func (D *Data) View() []float64 {
	return D.histo
}

//Sum returns the sum of all the bins.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

//ReHisto replaces the contents of the histogram with those obtained from rawdata and weights.
//Neither rawdata nor weights are modified.
func (D *Data) ReHisto(rawdata, weights []float64) {
	if weights != nil && len(weights) != len(rawdata) {
		panic("goHKL/histo.Data.ReHisto: rawdata and weights must have the same length")
	}
	//stat.Histogram needs sorted data, and panics with values that are off limits,
	//so we sort a copy and remove those values before the call.
	idx := make([]int, len(rawdata))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return rawdata[idx[i]] < rawdata[idx[j]] })
	last := D.dividers[len(D.dividers)-1]
	x := make([]float64, 0, len(rawdata))
	var w []float64
	if weights != nil {
		w = make([]float64, 0, len(rawdata))
	}
	for _, i := range idx {
		v := rawdata[i]
		if v < D.dividers[0] || v >= last {
			continue
		}
		x = append(x, v)
		if weights != nil {
			w = append(w, weights[i])
		}
	}
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, x, w)
	D.total = floats.Sum(D.histo)
}
