package bundle

import (
	"sync"

	"github.com/sausagetaste/daltools-go/internal/codec"
	"github.com/sausagetaste/daltools-go/internal/compress"
)

// itemEntry is one item-index record: its name and its byte range
// within the (lazily decompressed) data block.
type itemEntry struct {
	name   string
	offset uint64
	size   uint64
}

// Repository is a parsed DALBUNDLE archive. The item index is decoded
// eagerly; the data block stays compressed until the first Lookup,
// mirroring the reference repository's on-demand decompress-and-cache
// behavior.
type Repository struct {
	raw    []byte
	h      header
	items  []itemEntry
	byName map[string]int

	once      sync.Once
	dataBlock []byte
	dataErr   error
}

// Open parses archive bytes into a Repository, decoding the (small)
// item index immediately but deferring data-block decompression.
func Open(data []byte) (*Repository, error) {
	h, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}
	if uint64(len(data)) < h.itemsOffset+h.itemsSizeZ {
		return nil, ErrTruncated
	}
	if uint64(len(data)) < h.dataOffset+h.dataSizeZ {
		return nil, ErrTruncated
	}

	itemsZ := data[h.itemsOffset : h.itemsOffset+h.itemsSizeZ]
	itemsRaw, err := compress.BrotliDecompress(itemsZ, int(h.itemsSize))
	if err != nil {
		return nil, ErrCorrupted
	}
	if uint64(len(itemsRaw)) != h.itemsSize {
		return nil, ErrCorrupted
	}

	r := codec.NewReader(itemsRaw)
	items := make([]itemEntry, 0, h.itemsCount)
	byName := make(map[string]int, h.itemsCount)
	for i := uint64(0); i < h.itemsCount; i++ {
		name, err := r.ReadNTString()
		if err != nil {
			return nil, ErrCorrupted
		}
		offset, err := r.ReadU64()
		if err != nil {
			return nil, ErrCorrupted
		}
		size, err := r.ReadU64()
		if err != nil {
			return nil, ErrCorrupted
		}
		byName[name] = len(items)
		items = append(items, itemEntry{name: name, offset: offset, size: size})
	}
	if !r.IsEOF() {
		return nil, ErrCorrupted
	}

	return &Repository{raw: data, h: h, items: items, byName: byName}, nil
}

// Count returns the number of items in the archive.
func (repo *Repository) Count() int {
	return len(repo.items)
}

// Names returns every item name in index order.
func (repo *Repository) Names() []string {
	out := make([]string, len(repo.items))
	for i, it := range repo.items {
		out[i] = it.name
	}
	return out
}

// CreatedAt returns the archive's recorded creation timestamp.
func (repo *Repository) CreatedAt() string {
	return repo.h.createdAt
}

func (repo *Repository) ensureDataBlock() ([]byte, error) {
	repo.once.Do(func() {
		z := repo.raw[repo.h.dataOffset : repo.h.dataOffset+repo.h.dataSizeZ]
		raw, err := compress.BrotliDecompress(z, int(repo.h.dataSize))
		if err != nil {
			repo.dataErr = ErrCorrupted
			return
		}
		if uint64(len(raw)) != repo.h.dataSize {
			repo.dataErr = ErrCorrupted
			return
		}
		repo.dataBlock = raw
	})
	return repo.dataBlock, repo.dataErr
}

// Lookup returns the bytes of the named item, decompressing and
// caching the archive's data block on first call.
func (repo *Repository) Lookup(name string) ([]byte, error) {
	idx, ok := repo.byName[name]
	if !ok {
		return nil, ErrNotFound
	}
	data, err := repo.ensureDataBlock()
	if err != nil {
		return nil, err
	}

	it := repo.items[idx]
	end := it.offset + it.size
	if end > uint64(len(data)) {
		return nil, ErrCorrupted
	}
	return data[it.offset:end], nil
}
