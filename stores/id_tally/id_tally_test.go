package id_tally

import "testing"
import "github.com/stretchr/testify/assert"

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

import (
	"github.com/timtadh/data-structures/errors"
)

func fill(t *assert.Assertions, m MultiMap) {
	t.Nil(m.Add(300, Tally{Net: 0, Count: 4}))
	t.Nil(m.Add(7, Tally{Net: 1, Count: 2}))
	t.Nil(m.Add(300, Tally{Net: 2, Count: 9}))
	t.Nil(m.Add(1<<40, Tally{Net: 0, Count: 1}))
}

func TestAnonymous(x *testing.T) {
	t := assert.New(x)
	m, err := AnonBpTree()
	t.Nil(err)
	defer m.Delete()
	fill(t, m)
	t.Equal(4, m.Size())

	ids := make([]uint64, 0, 4)
	t.Nil(m.DoIterate(func(id uint64, _ Tally) error {
		ids = append(ids, id)
		return nil
	}))
	t.Equal([]uint64{7, 300, 300, 1 << 40}, ids)

	nets := make(map[int32]int32)
	t.Nil(m.DoIterate(func(id uint64, tally Tally) error {
		if id == 300 {
			nets[tally.Net] = tally.Count
		}
		return nil
	}))
	t.Equal(map[int32]int32{0: 4, 2: 9}, nets)

	stop := errors.Errorf("stop")
	seen := 0
	t.Equal(stop, m.DoIterate(func(uint64, Tally) error {
		seen++
		return stop
	}))
	t.Equal(1, seen)
}

func TestFileBacked(x *testing.T) {
	t := assert.New(x)
	dir, err := ioutil.TempDir("", "id_tally")
	t.Nil(err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "tallies.bptree")

	m, err := NewBpTree(path)
	t.Nil(err)
	fill(t, m)
	t.Equal(4, m.Size())
	_, err = os.Stat(path)
	t.Nil(err)
	t.Nil(m.Delete())
	_, err = os.Stat(path)
	t.True(os.IsNotExist(err))
}

func TestSerialization(x *testing.T) {
	t := assert.New(x)
	t.Equal(uint64(1<<63+5), DeserializeId(SerializeId(1<<63+5)))
	t.Equal(Tally{Net: 12, Count: 1 << 30}, DeserializeTally(SerializeTally(Tally{Net: 12, Count: 1 << 30})))
}
