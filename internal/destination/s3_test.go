package destination

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakeUploader struct {
	objects map[string]string
	err     error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(input.Bucket)+"/"+aws.ToString(input.Key)] = string(data)
	return &manager.UploadOutput{Key: input.Key}, nil
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		raw        string
		wantBucket string
		wantPrefix string
		wantErr    bool
	}{
		{raw: "s3://photos", wantBucket: "photos"},
		{raw: "s3://photos/", wantBucket: "photos"},
		{raw: "s3://photos/phone/2023/", wantBucket: "photos", wantPrefix: "phone/2023"},
		{raw: "s3://", wantErr: true},
		{raw: "/local/path", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			bucket, prefix, err := ParseS3URL(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseS3URL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if bucket != tt.wantBucket || prefix != tt.wantPrefix {
				t.Errorf("ParseS3URL() = (%q, %q), want (%q, %q)", bucket, prefix, tt.wantBucket, tt.wantPrefix)
			}
		})
	}
}

func TestS3Destination_Put(t *testing.T) {
	ctx := context.Background()

	t.Run("uploads under prefix and folder", func(t *testing.T) {
		up := &fakeUploader{objects: map[string]string{}}
		d := newS3DestinationWithUploader("photos", "/phone/", up)

		if err := d.EnsureFolder(ctx, "2023-01-01"); err != nil {
			t.Fatalf("EnsureFolder() error = %v", err)
		}
		if err := d.Put(ctx, "2023-01-01", "IMG_20230101.jpg", strings.NewReader("jpeg"), 4); err != nil {
			t.Fatalf("Put() error = %v", err)
		}

		got, ok := up.objects["photos/phone/2023-01-01/IMG_20230101.jpg"]
		if !ok {
			t.Fatalf("object not uploaded, have %v", up.objects)
		}
		if got != "jpeg" {
			t.Errorf("object content = %q, want %q", got, "jpeg")
		}
		if d.Describe() != "s3://photos/phone" {
			t.Errorf("Describe() = %q", d.Describe())
		}
	})

	t.Run("size mismatch", func(t *testing.T) {
		up := &fakeUploader{objects: map[string]string{}}
		d := newS3DestinationWithUploader("photos", "", up)
		if err := d.Put(ctx, "unsorted", "a.jpg", strings.NewReader("jpeg"), 10); err == nil {
			t.Fatal("Put() expected size mismatch error")
		}
	})

	t.Run("upload error", func(t *testing.T) {
		uploadErr := errors.New("access denied")
		d := newS3DestinationWithUploader("photos", "", &fakeUploader{err: uploadErr})
		err := d.Put(ctx, "unsorted", "a.jpg", strings.NewReader("jpeg"), 4)
		if !errors.Is(err, uploadErr) {
			t.Fatalf("Put() error = %v, want %v", err, uploadErr)
		}
	})
}
