package bucket

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngB64Fixture(t *testing.T) string {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 30), G: uint8(y * 30), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGetB64ImageFromString(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		b64Img, err := getB64ImageFromString("data:image/png;base64,iVBORw0KGgo=")
		require.NoError(t, err)
		assert.Equal(t, "data:image/png", b64Img.ContentType)
		assert.Equal(t, []byte("iVBORw0KGgo="), b64Img.Content)
	})

	t.Run("MissingPrefix", func(t *testing.T) {
		_, err := getB64ImageFromString("iVBORw0KGgo=")
		assert.Error(t, err)
	})
}

func TestImageFromString(t *testing.T) {
	img, err := imageFromString(pngB64Fixture(t))
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())

	_, err = imageFromString("data:image/gif;base64,R0lGOD==")
	assert.Error(t, err)
}

func TestPathAndURL(t *testing.T) {
	b := &Bucket{Config: &Config{
		S3BucketName: "elara-media",
		S3Endpoint:   "ams3.digitaloceanspaces.com",
		BaseFolder:   "products",
	}}

	fp := b.constructFullPath("noir-essence", "jpg")
	assert.Equal(t, "products/noir-essence.jpg", fp)
	assert.Equal(t, "https://elara-media.ams3.digitaloceanspaces.com/products/noir-essence.jpg", b.getCDNURL(fp))
}
