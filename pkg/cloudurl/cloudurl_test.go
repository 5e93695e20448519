package cloudurl

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantBucket string
		wantKey    string
		wantErr    error
	}{
		{"bucket only", "s3://models", "models", "", nil},
		{"bucket root", "s3://models/", "models", "", nil},
		{"object key", "s3://models/run1/model.tar.gz", "models", "run1/model.tar.gz", nil},
		{"prefix", "s3://models/run1/", "models", "run1/", nil},
		{"uppercase scheme", "S3://models/a", "models", "a", nil},
		{"empty", "", "", "", ErrInvalidURL},
		{"no scheme", "models/key", "", "", ErrInvalidURL},
		{"wrong scheme", "gs://models/key", "", "", ErrUnsupportedScheme},
		{"missing bucket", "s3://", "", "", ErrMissingBucket},
		{"missing bucket with slash", "s3:///key", "", "", ErrMissingBucket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.raw, err)
			}
			if got.Bucket != tt.wantBucket || got.Key != tt.wantKey {
				t.Fatalf("Parse(%q) = {%q %q}, want {%q %q}", tt.raw, got.Bucket, got.Key, tt.wantBucket, tt.wantKey)
			}
		})
	}
}

func TestIsRemote(t *testing.T) {
	if !IsRemote("s3://bucket/key") {
		t.Fatal("expected s3:// URL to be remote")
	}
	if IsRemote("/tmp/data.csv") {
		t.Fatal("expected local path to not be remote")
	}
	if IsRemote("data.csv") {
		t.Fatal("expected relative path to not be remote")
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base  string
		parts []string
		want  string
	}{
		{"s3://b/prefix", []string{"utils"}, "s3://b/prefix/utils"},
		{"s3://b/prefix/", []string{"utils", "train.csv"}, "s3://b/prefix/utils/train.csv"},
		{"s3://b", []string{"", "output"}, "s3://b/output"},
		{"s3://b/p", nil, "s3://b/p"},
	}
	for _, tt := range tests {
		if got := Join(tt.base, tt.parts...); got != tt.want {
			t.Fatalf("Join(%q, %v) = %q, want %q", tt.base, tt.parts, got, tt.want)
		}
	}
}
