package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlockID(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  BlockID
		expectErr bool
	}{
		{
			name:     "dataset block",
			input:    "dataset_12_3",
			expected: DatasetBlockID(12, 3),
		},
		{
			name:     "broadcast block",
			input:    "broadcast_7",
			expected: NamedBlockID(KindBroadcast, "7"),
		},
		{
			name:     "stream block",
			input:    "stream_input-0_44",
			expected: NamedBlockID(KindStream, "input-0_44"),
		},
		{
			name:     "temp block",
			input:    "temp_local-xyz",
			expected: NamedBlockID(KindTemp, "local-xyz"),
		},
		{
			name:      "unknown namespace",
			input:     "shuffle_1_2",
			expectErr: true,
		},
		{
			name:      "dataset without partition",
			input:     "dataset_12",
			expectErr: true,
		},
		{
			name:      "dataset with trailing garbage",
			input:     "dataset_12_3x",
			expectErr: true,
		},
		{
			name:      "empty broadcast name",
			input:     "broadcast_",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseBlockID(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
			assert.Equal(t, tc.input, actual.String(), "wire form round-trips")
		})
	}
}

func TestBlockID_BelongsTo(t *testing.T) {
	assert.True(t, DatasetBlockID(3, 1).BelongsTo(3))
	assert.False(t, DatasetBlockID(3, 1).BelongsTo(4))
	assert.False(t, NamedBlockID(KindBroadcast, "3").BelongsTo(3))
}

func TestBlockID_MapKeySerialization(t *testing.T) {
	blocks := map[BlockID]BlockStatus{
		DatasetBlockID(1, 2): {Level: MemoryOnly, MemSize: 10},
	}
	data, err := json.Marshal(blocks)
	assert.NoError(t, err)
	assert.Contains(t, string(data), `"dataset_1_2"`)

	var decoded map[BlockID]BlockStatus
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, blocks, decoded)
}
