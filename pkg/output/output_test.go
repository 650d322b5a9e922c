package output

import (
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 60), uint8(y * 100), 200, 255})
		}
	}
	return img
}

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "render.png")
	img := testImage()

	if err := SavePNG(img, path); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loaded, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("Failed to reopen image: %v", err)
	}
	if loaded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), loaded.Bounds())
	}
	r, g, b, _ := loaded.At(3, 2).RGBA()
	if r>>8 != 180 || g>>8 != 200 || b>>8 != 200 {
		t.Errorf("Expected pixel (180,200,200), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestSavePNG_UnwritableDirectory(t *testing.T) {
	// A regular file cannot be used as a directory
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	err := SavePNG(testImage(), filepath.Join(blocker, "render.png"))
	if err == nil || !strings.Contains(err.Error(), "creating output directory") {
		t.Errorf("Expected directory error, got %v", err)
	}
}

// fakeS3 records the last PutObject call
type fakeS3 struct {
	s3iface.S3API
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObjectWithContext(ctx aws.Context, input *s3.PutObjectInput, opts ...request.Option) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = input
	body, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestS3Uploader_UploadPNG(t *testing.T) {
	fake := &fakeS3{}
	uploader := newS3Uploader(fake, "renders")

	uri, err := uploader.UploadPNG(context.Background(), testImage(), "default/render.png")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if uri != "s3://renders/default/render.png" {
		t.Errorf("Unexpected URI %q", uri)
	}

	if aws.StringValue(fake.input.Bucket) != "renders" || aws.StringValue(fake.input.Key) != "default/render.png" {
		t.Errorf("Unexpected destination %s/%s", aws.StringValue(fake.input.Bucket), aws.StringValue(fake.input.Key))
	}
	if aws.StringValue(fake.input.ContentType) != "image/png" {
		t.Errorf("Expected image/png, got %s", aws.StringValue(fake.input.ContentType))
	}
	if aws.Int64Value(fake.input.ContentLength) != int64(len(fake.body)) {
		t.Errorf("Content length %d does not match body size %d", aws.Int64Value(fake.input.ContentLength), len(fake.body))
	}

	expected, err := EncodePNG(testImage())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(fake.body) != string(expected) {
		t.Error("Uploaded body does not match the encoded image")
	}
}

func TestS3Uploader_UploadError(t *testing.T) {
	uploader := newS3Uploader(&fakeS3{err: errors.New("access denied")}, "renders")

	_, err := uploader.UploadPNG(context.Background(), testImage(), "x.png")
	if err == nil || !strings.Contains(err.Error(), "uploading x.png") || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("Expected wrapped upload error, got %v", err)
	}
}

func TestNewS3Uploader_RequiresBucket(t *testing.T) {
	if _, err := NewS3Uploader(S3Config{Region: "us-east-1"}); err == nil {
		t.Error("Expected error without a bucket")
	}
}

func TestNewS3Uploader_CustomEndpoint(t *testing.T) {
	uploader, err := NewS3Uploader(S3Config{
		Bucket:    "renders",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "key",
		SecretKey: "secret",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	client := uploader.client.(*s3.S3)
	if client.Endpoint != "http://localhost:9000" {
		t.Errorf("Expected custom endpoint, got %s", client.Endpoint)
	}
}
