package bundle

import (
	"fmt"
	"sort"

	"github.com/sausagetaste/daltools-go/internal/codec"
	"github.com/sausagetaste/daltools-go/internal/compress"
)

// Item is one named byte blob to pack into an archive.
type Item struct {
	Name string
	Data []byte
}

// Build packs items into a DALBUNDLE archive, failing on a basename
// collision (§4.7's "two inputs resolve to the same stored name" edge
// case). Items are sorted by name for deterministic output, mirroring
// the reference builder's lexical glob-expansion order.
func Build(items []Item) ([]byte, error) {
	sorted := append([]Item(nil), items...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	seen := make(map[string]bool, len(sorted))
	for _, it := range sorted {
		if seen[it.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, it.Name)
		}
		seen[it.Name] = true
	}

	itemsW := codec.NewWriter()
	dataW := codec.NewWriter()
	for _, it := range sorted {
		itemsW.WriteNTString(it.Name)
		itemsW.WriteU64(uint64(dataW.Len()))
		itemsW.WriteU64(uint64(len(it.Data)))
		dataW.WriteRaw(it.Data)
	}

	itemsRaw := itemsW.Bytes()
	dataRaw := dataW.Bytes()

	itemsZ, err := compress.BrotliCompress(itemsRaw)
	if err != nil {
		return nil, fmt.Errorf("bundle: compress item index: %w", err)
	}
	dataZ, err := compress.BrotliCompress(dataRaw)
	if err != nil {
		return nil, fmt.Errorf("bundle: compress data block: %w", err)
	}

	h := header{
		version:     headerVersion,
		itemsOffset: headerSize,
		itemsSize:   uint64(len(itemsRaw)),
		itemsSizeZ:  uint64(len(itemsZ)),
		itemsCount:  uint64(len(sorted)),
		dataOffset:  headerSize + uint64(len(itemsZ)),
		dataSize:    uint64(len(dataRaw)),
		dataSizeZ:   uint64(len(dataZ)),
		createdAt:   isoNow(),
	}

	out := make([]byte, 0, headerSize+len(itemsZ)+len(dataZ))
	out = append(out, encodeHeader(h)...)
	out = append(out, itemsZ...)
	out = append(out, dataZ...)
	return out, nil
}
