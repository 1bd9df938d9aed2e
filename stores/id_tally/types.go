package id_tally

import (
	"encoding/binary"
)

// Tally is how often one motif occurred in one network of an ensemble run.
// Net 0 is the original network, Net i > 0 the i'th ensemble member.
type Tally struct {
	Net   int32
	Count int32
}

func SerializeId(id uint64) []byte {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint64(bytes, id)
	return bytes
}

func DeserializeId(bytes []byte) uint64 {
	return binary.BigEndian.Uint64(bytes)
}

func SerializeTally(t Tally) []byte {
	bytes := make([]byte, 8)
	binary.BigEndian.PutUint32(bytes[:4], uint32(t.Net))
	binary.BigEndian.PutUint32(bytes[4:], uint32(t.Count))
	return bytes
}

func DeserializeTally(bytes []byte) Tally {
	return Tally{
		Net:   int32(binary.BigEndian.Uint32(bytes[:4])),
		Count: int32(binary.BigEndian.Uint32(bytes[4:])),
	}
}
