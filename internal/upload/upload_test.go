package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// fakeS3 records PutObject calls.
type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Destination_Key(t *testing.T) {
	for _, tc := range []struct {
		prefix string
		want   string
	}{
		{"", "graph.bin"},
		{"edges", "edges/graph.bin"},
		{"edges/", "edges/graph.bin"},
	} {
		d := &S3Destination{prefix: tc.prefix}
		if got := d.Key("graph.bin"); got != tc.want {
			t.Errorf("Key(prefix=%q) = %q, want %q", tc.prefix, got, tc.want)
		}
	}
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.bin")
	content := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeS3{}
	dest := &S3Destination{client: fake, bucket: "graphs", prefix: "raw"}

	uri, size, err := File(context.Background(), dest, path)
	if err != nil {
		t.Fatalf("File: %v", err)
	}
	if uri != "s3://graphs/raw/graph.bin" {
		t.Errorf("uri = %q, want %q", uri, "s3://graphs/raw/graph.bin")
	}
	if size != int64(len(content)) {
		t.Errorf("size = %d, want %d", size, len(content))
	}
	if got := aws.ToString(fake.input.Bucket); got != "graphs" {
		t.Errorf("Bucket = %q, want %q", got, "graphs")
	}
	if got := aws.ToString(fake.input.ContentType); got != contentType {
		t.Errorf("ContentType = %q, want %q", got, contentType)
	}
	if got := aws.ToInt64(fake.input.ContentLength); got != int64(len(content)) {
		t.Errorf("ContentLength = %d, want %d", got, len(content))
	}
	if !bytes.Equal(fake.body, content) {
		t.Errorf("body = %v, want %v", fake.body, content)
	}
}

func TestFile_PutError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.bin")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	boom := errors.New("access denied")
	dest := &S3Destination{client: &fakeS3{err: boom}, bucket: "graphs"}
	if _, _, err := File(context.Background(), dest, path); !errors.Is(err, boom) {
		t.Fatalf("File error = %v, want %v", err, boom)
	}
}

func TestFile_MissingFile(t *testing.T) {
	dest := &S3Destination{client: &fakeS3{}, bucket: "graphs"}
	if _, _, err := File(context.Background(), dest, filepath.Join(t.TempDir(), "nope.bin")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("File error = %v, want not-exist", err)
	}
}

func TestNewS3Destination_RequiresBucket(t *testing.T) {
	if _, err := NewS3Destination(context.Background(), "", "", "us-east-1", ""); err == nil {
		t.Fatal("expected error for empty bucket")
	}
}
