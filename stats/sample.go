package stats

import (
	"math/rand"
)

func Srange(size int) []int {
	sample := make([]int, 0, size)
	for i := 0; i < size; i++ {
		sample = append(sample, i)
	}
	return sample
}

// Sample draws size distinct items from [0, populationSize) in random order.
func Sample(size, populationSize int) (sample []int) {
	if size > populationSize {
		size = populationSize
	}
	items := Srange(populationSize)
	sample = make([]int, 0, size)
	for i := 0; i < size; i++ {
		j := i + rand.Intn(len(items)-i)
		items[i], items[j] = items[j], items[i]
		sample = append(sample, items[i])
	}
	return sample
}

func RandomPermutation(size int) (perm []int) {
	return Sample(size, size)
}
