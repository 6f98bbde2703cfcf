package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PrivatePlace/PP-Backend/internal/common"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 7 {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	return img
}

func encodeWith(t *testing.T, fn func(*bytes.Buffer) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(&buf))
	return buf.Bytes()
}

func TestDownscale(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"landscape", 2400, 1200, 1200, 600},
		{"portrait", 900, 3000, 360, 1200},
		{"square", 1500, 1500, 1200, 1200},
		{"already small", 800, 600, 800, 600},
		{"exact bound", 1200, 10, 1200, 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := Downscale(testImage(tc.w, tc.h), 1200)
			assert.Equal(t, tc.wantW, out.Bounds().Dx())
			assert.Equal(t, tc.wantH, out.Bounds().Dy())
		})
	}
}

type memBlobs struct {
	key, contentType string
	data             []byte
	err              error
}

func (m *memBlobs) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.key, m.contentType, m.data = key, contentType, data
	return "https://cdn.example/" + key, nil
}

func TestUploader_KeepsFormat(t *testing.T) {
	tests := []struct {
		name        string
		data        []byte
		ext, ctype  string
		decodeCheck func([]byte) (image.Image, error)
	}{
		{
			"png",
			encodeWith(t, func(b *bytes.Buffer) error { return png.Encode(b, testImage(2000, 1000)) }),
			"png", "image/png",
			func(b []byte) (image.Image, error) { return png.Decode(bytes.NewReader(b)) },
		},
		{
			"jpeg",
			encodeWith(t, func(b *bytes.Buffer) error { return jpeg.Encode(b, testImage(2000, 1000), nil) }),
			"jpg", "image/jpeg",
			func(b []byte) (image.Image, error) { return jpeg.Decode(bytes.NewReader(b)) },
		},
		{
			"gif",
			encodeWith(t, func(b *bytes.Buffer) error { return gif.Encode(b, testImage(2000, 1000), nil) }),
			"gif", "image/gif",
			func(b []byte) (image.Image, error) { return gif.Decode(bytes.NewReader(b)) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blobs := &memBlobs{}
			u := NewUploader(blobs, 1200)
			u.newID = func() string { return "fixed" }

			url, err := u.Upload(context.Background(), tc.data, "ad-1")
			require.NoError(t, err)
			assert.Equal(t, "ads/ad-1/fixed."+tc.ext, blobs.key)
			assert.Equal(t, tc.ctype, blobs.contentType)
			assert.Equal(t, "https://cdn.example/ads/ad-1/fixed."+tc.ext, url)

			img, err := tc.decodeCheck(blobs.data)
			require.NoError(t, err)
			assert.Equal(t, 1200, img.Bounds().Dx())
			assert.Equal(t, 600, img.Bounds().Dy())
		})
	}
}

func TestUploader_Errors(t *testing.T) {
	u := NewUploader(&memBlobs{}, 0)
	_, err := u.Upload(context.Background(), []byte("definitely not an image"), "ad-1")
	assert.ErrorIs(t, err, common.ErrUpload)

	small := encodeWith(t, func(b *bytes.Buffer) error { return png.Encode(b, testImage(10, 10)) })
	u = NewUploader(&memBlobs{err: errors.New("bucket gone")}, 0)
	_, err = u.Upload(context.Background(), small, "ad-1")
	assert.ErrorIs(t, err, common.ErrUpload)
	assert.Contains(t, err.Error(), "bucket gone")
}

func TestOutputFormat(t *testing.T) {
	assert.Equal(t, formatJPEG, outputFormat("webp"))
	assert.Equal(t, formatJPEG, outputFormat(""))
	assert.Equal(t, formatPNG, outputFormat("png"))
}

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "ads/a1/x.jpg", "image/jpeg", []byte("data"))
	require.NoError(t, err)
	assert.Equal(t, "/media/ads/a1/x.jpg", url)

	got, err := os.ReadFile(filepath.Join(dir, "ads", "a1", "x.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	// Traversal stays inside dir.
	_, err = s.Put(context.Background(), "../../escape.jpg", "image/jpeg", []byte("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.jpg"))
	assert.NoError(t, err)
}

type fakeS3 struct {
	in  *s3.PutObjectInput
	err error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	client := &fakeS3{}
	s := newS3Store(client, S3Options{Bucket: "pp-media", Region: "eu-west-3"})

	url, err := s.Put(context.Background(), "ads/a1/x.png", "image/png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "https://pp-media.s3.eu-west-3.amazonaws.com/ads/a1/x.png", url)
	assert.Equal(t, "pp-media", aws.ToString(client.in.Bucket))
	assert.Equal(t, "ads/a1/x.png", aws.ToString(client.in.Key))
	assert.Equal(t, "image/png", aws.ToString(client.in.ContentType))
	assert.Equal(t, types.ObjectCannedACLPublicRead, client.in.ACL)

	client.err = errors.New("denied")
	_, err = s.Put(context.Background(), "k", "image/png", nil)
	assert.Error(t, err)
}

func TestPublicBaseURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example", publicBaseURL(S3Options{PublicBaseURL: "https://cdn.example", Bucket: "b"}))
	assert.Equal(t, "http://minio:9000/b", publicBaseURL(S3Options{Endpoint: "http://minio:9000/", Bucket: "b"}))
	assert.True(t, strings.HasPrefix(publicBaseURL(S3Options{Bucket: "b", Region: "us-east-1"}), "https://b.s3."))
}
