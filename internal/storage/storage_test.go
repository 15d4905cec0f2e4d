package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/minio/minio-go/v7"
)

func TestKeys(t *testing.T) {
	if got := ExportKey(3, 7, "abc", ".pdf"); got != "exports/3/7/abc.pdf" {
		t.Fatalf("unexpected export key %q", got)
	}
	if got := ThumbnailKey("modern-01"); got != "thumbnails/template/modern-01.png" {
		t.Fatalf("unexpected thumbnail key %q", got)
	}
	if got := UserAssetKey(1, "x", "png"); got != "user-assets/1/x.png" {
		t.Fatalf("unexpected asset key %q", got)
	}
}

func TestIsValidUserAssetKey(t *testing.T) {
	cases := map[string]bool{
		"user-assets/1/a.png":      true,
		"user-assets/1/a.JPEG":     true,
		"user-assets/2/a.png":      false,
		"user-assets/1/../2/a.png": false,
		"user-assets/1//a.png":     false,
		"user-assets/1/a.gif":      false,
		"":                         false,
	}
	for key, want := range cases {
		if got := IsValidUserAssetKey(1, key); got != want {
			t.Fatalf("IsValidUserAssetKey(%q) = %v want %v", key, got, want)
		}
	}
}

func TestErrorClassifiers(t *testing.T) {
	noKey := fmt.Errorf("get: %w", minio.ErrorResponse{Code: "NoSuchKey"})
	noBucket := fmt.Errorf("get: %w", minio.ErrorResponse{Code: "NoSuchBucket"})

	if !IsNoSuchKey(noKey) || IsNoSuchKey(nil) {
		t.Fatal("NoSuchKey not classified")
	}
	if !IsNoSuchBucket(noBucket) || IsNoSuchBucket(errors.New("timeout")) {
		t.Fatal("NoSuchBucket not classified")
	}
}

func TestClassifierTextFallback(t *testing.T) {
	if !IsNoSuchKey(errors.New("gateway: The specified key does not exist.")) {
		t.Fatal("text fallback for missing key")
	}
	if IsNoSuchKey(errors.New("route not found")) {
		t.Fatal("generic not found must not be treated as a missing object")
	}
	if !IsAccessDenied(fmt.Errorf("put: %w", minio.ErrorResponse{Code: "AccessDenied"})) {
		t.Fatal("AccessDenied not classified")
	}
}

func TestParseBucketLookup(t *testing.T) {
	for in, want := range map[string]minio.BucketLookupType{
		"":     minio.BucketLookupAuto,
		"DNS":  minio.BucketLookupDNS,
		"path": minio.BucketLookupPath,
	} {
		got, err := parseBucketLookup(in)
		if err != nil || got != want {
			t.Fatalf("parseBucketLookup(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := parseBucketLookup("virtual"); err == nil {
		t.Fatal("expected error for unknown lookup")
	}
}
