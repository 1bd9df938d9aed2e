package id_tally

import (
	"sync"
)

import (
	"github.com/timtadh/fs2"
	"github.com/timtadh/fs2/bptree"
	"github.com/timtadh/fs2/fmap"
)

// MultiMap maps motif ids to the tallies recorded for them. Keys iterate in
// ascending id order.
type MultiMap interface {
	Iterate() (Iterator, error)
	DoIterate(do func(uint64, Tally) error) error
	Add(id uint64, t Tally) error
	Size() int
	Close() error
	Delete() error
}

type Iterator func() (uint64, Tally, error, Iterator)

func Do(run func() (Iterator, error), do func(id uint64, t Tally) error) error {
	kvi, err := run()
	if err != nil {
		return err
	}
	var id uint64
	var t Tally
	for id, t, err, kvi = kvi(); kvi != nil; id, t, err, kvi = kvi() {
		e := do(id, t)
		if e != nil {
			return e
		}
	}
	return err
}

type BpTree struct {
	bf    *fmap.BlockFile
	bpt   *bptree.BpTree
	mutex sync.Mutex
}

func AnonBpTree() (*BpTree, error) {
	bf, err := fmap.Anonymous(fmap.BLOCKSIZE)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func NewBpTree(path string) (*BpTree, error) {
	bf, err := fmap.CreateBlockFile(path)
	if err != nil {
		return nil, err
	}
	return newBpTree(bf)
}

func newBpTree(bf *fmap.BlockFile) (*BpTree, error) {
	bpt, err := bptree.New(bf, 8, 8)
	if err != nil {
		return nil, err
	}
	return &BpTree{bf: bf, bpt: bpt}, nil
}

func (b *BpTree) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bf.Close()
}

// Delete closes the tree and removes its file, if it has one.
func (b *BpTree) Delete() error {
	err := b.Close()
	if err != nil {
		return err
	}
	if b.bf.Path() != "" {
		return b.bf.Remove()
	}
	return nil
}

func (b *BpTree) Size() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Size()
}

func (b *BpTree) Add(id uint64, t Tally) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.bpt.Add(SerializeId(id), SerializeTally(t))
}

func (b *BpTree) kvIter(kvi fs2.Iterator) (it Iterator) {
	it = func() (id uint64, t Tally, err error, _ Iterator) {
		b.mutex.Lock()
		defer b.mutex.Unlock()
		var k, v []byte
		k, v, err, kvi = kvi()
		if err != nil {
			return 0, Tally{}, err, nil
		}
		if kvi == nil {
			return 0, Tally{}, nil, nil
		}
		return DeserializeId(k), DeserializeTally(v), nil, it
	}
	return it
}

func (b *BpTree) Iterate() (it Iterator, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	raw, err := b.bpt.Iterate()
	if err != nil {
		return nil, err
	}
	return b.kvIter(raw), nil
}

func (b *BpTree) DoIterate(do func(uint64, Tally) error) error {
	return Do(b.Iterate, do)
}
