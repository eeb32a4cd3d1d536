package storage

import (
	"fmt"
)

// BlockKind discriminates the block identifier namespaces used by the engine.
type BlockKind string

const (
	// KindDataset identifies a partition of a logical dataset; only dataset
	// blocks participate in dataset-wide unpersist.
	KindDataset BlockKind = "dataset"

	// KindBroadcast identifies a broadcast variable block.
	KindBroadcast BlockKind = "broadcast"

	// KindStream identifies a block received from a streaming source.
	KindStream BlockKind = "stream"

	// KindTemp identifies a transient block used during computation.
	KindTemp BlockKind = "temp"
)

// BlockID identifies a single cached block. Dataset blocks carry the owning
// dataset id and the partition index; all other kinds carry an opaque name.
// The type is comparable and therefore usable as a map key.
type BlockID struct {
	Kind      BlockKind `json:"kind"`
	DatasetID int       `json:"datasetId,omitempty"`
	Partition int       `json:"partition,omitempty"`
	Name      string    `json:"name,omitempty"`
}

// DatasetBlockID returns the identifier of one partition of a dataset.
func DatasetBlockID(datasetID, partition int) BlockID {
	return BlockID{Kind: KindDataset, DatasetID: datasetID, Partition: partition}
}

// NamedBlockID returns an identifier in a non-dataset namespace.
func NamedBlockID(kind BlockKind, name string) BlockID {
	return BlockID{Kind: kind, Name: name}
}

// BelongsTo reports whether the block is a partition of the given dataset.
func (b BlockID) BelongsTo(datasetID int) bool {
	return b.Kind == KindDataset && b.DatasetID == datasetID
}

// String renders the engine wire form, e.g. "dataset_12_3" or "broadcast_7".
func (b BlockID) String() string {
	if b.Kind == KindDataset {
		return fmt.Sprintf("%s_%d_%d", b.Kind, b.DatasetID, b.Partition)
	}
	return fmt.Sprintf("%s_%s", b.Kind, b.Name)
}

// MarshalText lets block maps serialize with the wire form as the key.
func (b BlockID) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText parses the engine wire form.
func (b *BlockID) UnmarshalText(text []byte) error {
	parsed, err := ParseBlockID(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
