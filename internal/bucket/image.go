package bucket

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"path"
	"strings"

	"github.com/bbrks/go-blurhash"
	"github.com/minio/minio-go/v7"
)

const (
	contentTypeJPEG = "image/jpeg"
	contentTypePNG  = "image/png"

	// blurhash component counts, enough detail for a bottle shot placeholder
	blurhashXComponents = 4
	blurhashYComponents = 3

	jpegQuality = 85
)

// UploadProductImage decodes a raw base64 image, re-encodes it as JPEG,
// uploads it publicly readable and returns the public URL together with a
// blurhash placeholder for the storefront to render while the image loads.
func (b *Bucket) UploadProductImage(ctx context.Context, rawB64Image, imageName string) (string, string, error) {
	img, err := imageFromString(rawB64Image)
	if err != nil {
		return "", "", fmt.Errorf("failed to decode base64 image: %w", err)
	}

	hash, err := blurhash.Encode(blurhashXComponents, blurhashYComponents, img)
	if err != nil {
		return "", "", fmt.Errorf("failed to encode blurhash: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", "", fmt.Errorf("failed to encode JPG: %w", err)
	}

	url, err := b.uploadToBucket(ctx, &buf, imageName)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload image to bucket: %w", err)
	}

	return url, hash, nil
}

func (b *Bucket) uploadToBucket(ctx context.Context, buf *bytes.Buffer, imageName string) (string, error) {
	fp := b.constructFullPath(imageName, "jpg")

	r := bytes.NewReader(buf.Bytes())
	_, err := b.Client.PutObject(ctx, b.Config.S3BucketName, fp, r,
		int64(r.Len()), minio.PutObjectOptions{
			ContentType:  contentTypeJPEG,
			CacheControl: "max-age=31536000",
			UserMetadata: map[string]string{"x-amz-acl": "public-read"},
		},
	)
	if err != nil {
		return "", fmt.Errorf("error putting object: %w", err)
	}

	return b.getCDNURL(fp), nil
}

// getB64ImageFromString extracts the content type and the byte content from a
// raw base64 image string of the form "data:[<mediatype>];base64,[<data>]".
func getB64ImageFromString(rawB64Image string) (*B64Image, error) {
	const base64Prefix = ";base64,"
	parts := strings.Split(rawB64Image, base64Prefix)

	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid base64 image format: expected 'data:[mediatype];base64,[data]'")
	}

	return &B64Image{
		ContentType: parts[0],
		Content:     []byte(parts[1]),
	}, nil
}

func (b64Img *B64Image) b64ToImage() (image.Image, error) {
	reader := base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b64Img.Content))
	switch b64Img.ContentType {
	case "data:" + contentTypeJPEG:
		return jpeg.Decode(reader)
	case "data:" + contentTypePNG:
		return png.Decode(reader)
	default:
		return nil, fmt.Errorf("b64ToImage: file type is not supported [%s]", b64Img.ContentType)
	}
}

func imageFromString(rawB64Image string) (image.Image, error) {
	b64Img, err := getB64ImageFromString(rawB64Image)
	if err != nil {
		return nil, err
	}
	return b64Img.b64ToImage()
}

func (b *Bucket) constructFullPath(fileName, ext string) string {
	return path.Clean(path.Join(b.BaseFolder, fileName) + "." + ext)
}

func (b *Bucket) getCDNURL(filePath string) string {
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, filePath)
}
