package stats

import (
	"math"
)

func Sum(list []float64) float64 {
	var sum float64
	for _, item := range list {
		sum += item
	}
	return sum
}

func Floats(ints []int) []float64 {
	floats := make([]float64, len(ints))
	for i, x := range ints {
		floats[i] = float64(x)
	}
	return floats
}

// Mean of list, 0 for an empty list.
func Mean(list []float64) float64 {
	if len(list) == 0 {
		return 0
	}
	return Sum(list) / float64(len(list))
}

// StdDev is the population standard deviation of list.
func StdDev(list []float64) float64 {
	if len(list) == 0 {
		return 0
	}
	mean := Mean(list)
	var ss float64
	for _, x := range list {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(list)))
}

// ZScore of x against list. When list has no spread the score is +Inf, -Inf
// or 0 depending on which side of the mean x falls.
func ZScore(x float64, list []float64) float64 {
	mean := Mean(list)
	sd := StdDev(list)
	if sd == 0 {
		switch {
		case x > mean:
			return math.Inf(1)
		case x < mean:
			return math.Inf(-1)
		default:
			return 0
		}
	}
	return (x - mean) / sd
}

func Round(val float64, places int) (newVal float64) {
	var round float64
	pow := math.Pow(10, float64(places))
	digit := pow * val
	_, div := math.Modf(digit)
	if math.Copysign(div, val) >= math.Copysign(.5, val) {
		round = math.Ceil(digit)
	} else {
		round = math.Floor(digit)
	}
	return round / pow
}
