package storage

import (
	"testing"
	"time"

	"github.com/poiesic/toolshelf/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalItemID(t *testing.T) {
	for _, id := range []string{"", "1", "0b6a2c1e-8f7d-4d51-9a43-3c8f2e7b9d10", "ツール-42"} {
		decoded, err := UnmarshalItemID(MarshalItemID(id))
		require.NoError(t, err)
		assert.Equal(t, id, decoded)
	}
}

func TestMarshalUnmarshalItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		item *core.Item
	}{
		{
			name: "complete item",
			item: &core.Item{
				ID:          "dalle",
				Name:        "DALL-E",
				Category:    core.CategoryImage,
				Rating:      4,
				CreatedAt:   now.Add(-48 * time.Hour),
				UsageDate:   now,
				Description: "画像生成AI",
			},
		},
		{
			name: "never used, no description",
			item: &core.Item{
				ID:        "sora",
				Name:      "Sora",
				Category:  core.CategoryVideo,
				Rating:    5,
				CreatedAt: now,
			},
		},
		{
			name: "created before the epoch",
			item: &core.Item{
				ID:        "old",
				Name:      "ELIZA",
				Category:  core.CategoryText,
				Rating:    1,
				CreatedAt: time.Date(1966, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalItem(tt.item)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalItem(data)
			require.NoError(t, err)

			assert.Equal(t, tt.item.ID, decoded.ID)
			assert.Equal(t, tt.item.Name, decoded.Name)
			assert.Equal(t, tt.item.Category, decoded.Category)
			assert.Equal(t, tt.item.Rating, decoded.Rating)
			assert.Equal(t, tt.item.Description, decoded.Description)
			assert.True(t, tt.item.CreatedAt.Equal(decoded.CreatedAt))
			assert.True(t, tt.item.UsageDate.Equal(decoded.UsageDate))
			assert.Equal(t, tt.item.UsageDate.IsZero(), decoded.UsageDate.IsZero())
		})
	}
}

func TestMarshalItem_DropsSubMicrosecondPrecision(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 1500, time.UTC)
	decoded, err := UnmarshalItem(MarshalItem(&core.Item{ID: "x", Name: "x", Category: core.CategoryOther, Rating: 1, CreatedAt: created}))
	require.NoError(t, err)
	assert.Equal(t, created.Truncate(time.Microsecond), decoded.CreatedAt)
}

func TestUnmarshalItem_Invalid(t *testing.T) {
	valid := MarshalItem(&core.Item{ID: "x", Name: "x", Category: core.CategoryOther, Rating: 1})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
		{"truncated record", valid[:len(valid)-1]},
		{"trailing bytes", append(append([]byte{}, valid...), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalItem(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}
