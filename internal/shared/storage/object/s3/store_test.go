package s3

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeAPI struct {
	objects map[string][]byte
	lastPut *s3.PutObjectInput
	deleted []string
}

func newFakeAPI() *fakeAPI { return &fakeAPI{objects: map[string][]byte{}} }

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Key)] = body
	f.lastPut = in
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, aws.ToString(in.Key))
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/user/file.pdf", want: "root/user/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestSaveOpenDeleteUsesPrefix(t *testing.T) {
	api := newFakeAPI()
	store := NewWithClient(api, "bucket", "/uploads/", "")
	ctx := context.Background()

	key, size, mimeType, err := store.Save(ctx, "google:1", "cv.pdf", strings.NewReader("%PDF-1.7 body"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if size != int64(len("%PDF-1.7 body")) || mimeType != "application/pdf" {
		t.Fatalf("unexpected size=%d mime=%q", size, mimeType)
	}
	if !strings.HasPrefix(aws.ToString(api.lastPut.Key), "uploads/") {
		t.Fatalf("expected prefixed object key, got %q", aws.ToString(api.lastPut.Key))
	}
	if api.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 default encryption, got %q", api.lastPut.ServerSideEncryption)
	}

	rc, err := store.Open(ctx, key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.7 body" {
		t.Fatalf("unexpected body %q", data)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "uploads/"+key {
		t.Fatalf("unexpected deletes %v", api.deleted)
	}
}

func TestSaveUsesKMSWhenConfigured(t *testing.T) {
	api := newFakeAPI()
	store := NewWithClient(api, "bucket", "", "kms-123")
	if _, _, _, err := store.Save(context.Background(), "u", "a.docx", strings.NewReader("PK")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if api.lastPut.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms || aws.ToString(api.lastPut.SSEKMSKeyId) != "kms-123" {
		t.Fatalf("expected kms encryption, got %+v", api.lastPut)
	}
}
