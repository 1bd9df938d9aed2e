package config

import (
	"math/rand"
	"path/filepath"
	"runtime"
)

import (
	"github.com/timtadh/motifs/stores/id_tally"
)

type Config struct {
	Cache       string
	Output      string
	K           int
	Base        uint64
	Parallelism int
	SkipFailed  bool
}

func (c *Config) Copy() *Config {
	return &Config{
		Cache:       c.Cache,
		Output:      c.Output,
		K:           c.K,
		Base:        c.Base,
		Parallelism: c.Parallelism,
		SkipFailed:  c.SkipFailed,
	}
}

func (c *Config) Workers() int {
	if c.Parallelism == 0 {
		return 1
	} else if c.Parallelism == -1 {
		return runtime.NumCPU()
	} else {
		return c.Parallelism
	}
}

func (c *Config) Randstr() string {
	runes := make([]rune, 0, 10)
	for i := 0; i < 10; i++ {
		runes = append(runes, rune(97+rand.Intn(26)))
	}
	return string(runes)
}

func (c *Config) CacheFile(name string) string {
	return filepath.Join(c.Cache, name)
}

func (c *Config) OutputFile(name string) string {
	return filepath.Join(c.Output, name)
}

func (c *Config) IdTallyMultiMap(name string) (id_tally.MultiMap, error) {
	if c.Cache == "" {
		return id_tally.AnonBpTree()
	} else {
		return id_tally.NewBpTree(c.CacheFile(name + "-" + c.Randstr() + ".bptree"))
	}
}
