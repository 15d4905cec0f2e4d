package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"

	"resumeStudio/internal/errcode"
	"resumeStudio/internal/resume"
)

type fakeReader struct {
	objects map[string][]byte
	err     error
	reads   int
}

func (f *fakeReader) ReadObject(_ context.Context, key string) ([]byte, string, error) {
	f.reads++
	if f.err != nil {
		return nil, "", f.err
	}
	b, ok := f.objects[key]
	if !ok {
		return nil, "", fmt.Errorf("get object %q: %w", key, minio.ErrorResponse{Code: "NoSuchKey"})
	}
	return b, "image/jpeg", nil
}

func withPhoto(p string) resume.Data {
	d := resume.Default()
	d.PersonalInfo.FullName = "Jane Doe"
	d.PersonalInfo.Photo = p
	return d
}

func TestInlinePhotoEmbedsObject(t *testing.T) {
	store := &fakeReader{objects: map[string][]byte{"user-assets/1/me.jpg": []byte("jpeg")}}
	out, warn, err := InlinePhoto(context.Background(), store, 1, withPhoto("user-assets/1/me.jpg"))
	if err != nil || warn != nil {
		t.Fatalf("unexpected %v %v", warn, err)
	}
	if out.PersonalInfo.Photo != "data:image/jpeg;base64,anBlZw==" {
		t.Fatalf("unexpected photo %q", out.PersonalInfo.Photo)
	}
}

func TestInlinePhotoKeepsEmbeddable(t *testing.T) {
	store := &fakeReader{}
	for _, p := range []string{"", "data:image/png;base64,AAAA", "DATA:image/jpeg;base64,AAAA"} {
		out, warn, err := InlinePhoto(context.Background(), store, 1, withPhoto(p))
		if err != nil || warn != nil || out.PersonalInfo.Photo != p {
			t.Fatalf("%q: unexpected %q %v %v", p, out.PersonalInfo.Photo, warn, err)
		}
	}
	if store.reads != 0 {
		t.Fatal("embeddable photos must not touch storage")
	}
}

func TestInlinePhotoDropsRemoteURLs(t *testing.T) {
	store := &fakeReader{}
	for _, p := range []string{
		"http://169.254.169.254/latest/meta-data/iam/x.png",
		"https://cdn.example/me.png",
		"http://minio:9000/resumes/user-assets/1/me.png",
		"//internal.host/me.png",
		"file:///etc/passwd",
	} {
		out, warn, err := InlinePhoto(context.Background(), store, 1, withPhoto(p))
		if err != nil {
			t.Fatalf("%q: %v", p, err)
		}
		if out.PersonalInfo.Photo != "" {
			t.Fatalf("%q: remote photo must be dropped, got %q", p, out.PersonalInfo.Photo)
		}
		if warn == nil || warn.Code != errcode.ResourceMissing || warn.MissingKeys[0] != p {
			t.Fatalf("%q: unexpected warning %+v", p, warn)
		}
	}
	if store.reads != 0 {
		t.Fatal("remote photos must not touch storage")
	}
}

func TestInlinePhotoMissingIsWarning(t *testing.T) {
	store := &fakeReader{objects: map[string][]byte{}}
	for _, key := range []string{"user-assets/1/gone.png", "user-assets/2/other.png", "user-assets/1/x.exe"} {
		out, warn, err := InlinePhoto(context.Background(), store, 1, withPhoto(key))
		if err != nil {
			t.Fatalf("%q: %v", key, err)
		}
		if warn == nil || warn.Code != errcode.ResourceMissing || warn.MissingKeys[0] != key {
			t.Fatalf("%q: unexpected warning %+v", key, warn)
		}
		if out.PersonalInfo.Photo != "" || out.PersonalInfo.FullName != "Jane Doe" {
			t.Fatalf("%q: photo must be dropped and the rest kept", key)
		}
	}
}

func TestInlinePhotoMissingBucketIsError(t *testing.T) {
	store := &fakeReader{err: minio.ErrorResponse{Code: "NoSuchBucket"}}
	_, _, err := InlinePhoto(context.Background(), store, 1, withPhoto("user-assets/1/me.png"))
	if err == nil || !strings.Contains(err.Error(), "bucket") {
		t.Fatalf("expected bucket error, got %v", err)
	}

	boom := errors.New("connection reset")
	store = &fakeReader{err: boom}
	if _, _, err := InlinePhoto(context.Background(), store, 1, withPhoto("user-assets/1/me.png")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
