package bundle

import (
	"time"

	"github.com/sausagetaste/daltools-go/internal/codec"
)

// headerSize is the fixed on-disk size of a header: 8-byte magic, 8
// uint64 fields, and a 32-byte ISO-8601 creation timestamp.
const headerSize = 8 + 8*8 + 32

// header is the fixed-layout file header: magic, a version tag, the
// item-index block's location/sizes, the data block's location/sizes,
// and the archive's creation time (§4.7).
type header struct {
	version     uint64
	itemsOffset uint64
	itemsSize   uint64
	itemsSizeZ  uint64
	itemsCount  uint64
	dataOffset  uint64
	dataSize    uint64
	dataSizeZ   uint64
	createdAt   string
}

func encodeHeader(h header) []byte {
	w := codec.NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteU64(h.version)
	w.WriteU64(h.itemsOffset)
	w.WriteU64(h.itemsSize)
	w.WriteU64(h.itemsSizeZ)
	w.WriteU64(h.itemsCount)
	w.WriteU64(h.dataOffset)
	w.WriteU64(h.dataSize)
	w.WriteU64(h.dataSizeZ)

	var dt [32]byte
	copy(dt[:], h.createdAt)
	w.WriteRaw(dt[:])

	return w.Bytes()
}

func decodeHeader(data []byte) (header, error) {
	if len(data) < headerSize {
		return header{}, ErrTruncated
	}
	if [8]byte(data[:8]) != Magic {
		return header{}, ErrMagicMismatch
	}

	r := codec.NewReader(data[8:headerSize])
	var h header
	var err error
	if h.version, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.version != headerVersion {
		return header{}, ErrUnsupportedVersion
	}
	if h.itemsOffset, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.itemsSize, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.itemsSizeZ, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.itemsCount, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.dataOffset, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.dataSize, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	if h.dataSizeZ, err = r.ReadU64(); err != nil {
		return header{}, ErrTruncated
	}
	dt, err := r.ReadRaw(32)
	if err != nil {
		return header{}, ErrTruncated
	}
	h.createdAt = trimNulls(dt)

	return h, nil
}

func trimNulls(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
