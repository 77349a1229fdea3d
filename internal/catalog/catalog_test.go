package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countMain(images []ProductImage) int {
	n := 0
	for _, img := range images {
		if img.IsMain {
			n++
		}
	}
	return n
}

func TestSetMainImage(t *testing.T) {
	t.Parallel()

	images := []ProductImage{
		{ID: "a", IsMain: true, Order: 0},
		{ID: "b", Order: 1},
		{ID: "c", Order: 2},
	}

	out, err := SetMainImage(images, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, countMain(out))
	main, ok := Product{Images: out}.MainImage()
	require.True(t, ok)
	assert.Equal(t, "c", main.ID)

	assert.True(t, images[0].IsMain, "input must not be mutated")
}

func TestSetMainImage_Unknown(t *testing.T) {
	t.Parallel()

	images := []ProductImage{{ID: "a", IsMain: true}}
	out, err := SetMainImage(images, "zzz")
	assert.ErrorIs(t, err, ErrImageNotFound)
	assert.Equal(t, images, out)
}

func TestNormalizeImages(t *testing.T) {
	t.Parallel()

	t.Run("no main flagged picks first by order", func(t *testing.T) {
		out := NormalizeImages([]ProductImage{{ID: "b", Order: 5}, {ID: "a", Order: 1}})
		require.Len(t, out, 2)
		assert.Equal(t, "a", out[0].ID)
		assert.True(t, out[0].IsMain)
		assert.Equal(t, 0, out[0].Order)
		assert.Equal(t, 1, out[1].Order)
	})

	t.Run("several flagged keeps the first", func(t *testing.T) {
		out := NormalizeImages([]ProductImage{
			{ID: "a", Order: 0},
			{ID: "b", Order: 1, IsMain: true},
			{ID: "c", Order: 2, IsMain: true},
		})
		assert.Equal(t, 1, countMain(out))
		assert.True(t, out[1].IsMain)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, NormalizeImages(nil))
	})
}
