package gcs_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/texpack/pkg/infra/gcs"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected gcs.Location
		wantErr  bool
	}{
		{
			name:     "Bucket and object",
			input:    "gs://assets/textures/wall01.dds",
			expected: gcs.Location{Bucket: "assets", Object: "textures/wall01.dds"},
		},
		{
			name:     "Bucket only",
			input:    "gs://assets",
			expected: gcs.Location{Bucket: "assets", Object: ""},
		},
		{
			name:    "Wrong scheme",
			input:   "https://assets/a.dds",
			wantErr: true,
		},
		{
			name:    "Missing bucket",
			input:   "gs:///a.dds",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := gcs.ParseURL(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, loc, tt.expected)
		})
	}
}

func TestLocation_String(t *testing.T) {
	loc := gcs.Location{Bucket: "b", Object: "dir/unit_with_textures.zip"}
	gt.Equal(t, loc.String(), "gs://b/dir/unit_with_textures.zip")
}

func TestClient_WithRealBucket(t *testing.T) {
	bucket := os.Getenv("TEST_GCS_BUCKET")
	if bucket == "" {
		t.Skip("TEST_GCS_BUCKET is not set")
	}

	ctx := context.Background()
	client, err := gcs.New(ctx, gcs.WithPrefix("gs://"+bucket+"/texpack-test"))
	gt.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	dest, err := client.Write(ctx, "test.zip", []byte("PK"))
	gt.NoError(t, err)

	data, err := client.FetchBinary(ctx, dest)
	gt.NoError(t, err)
	gt.Equal(t, string(data), "PK")
}
