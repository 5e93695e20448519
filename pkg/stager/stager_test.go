package stager

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3leaps/nimbusml/pkg/frame"
	"github.com/3leaps/nimbusml/pkg/provider"
)

// fakeStore records uploads and serves Head from a set of known keys.
type fakeStore struct {
	bucket   string
	uploads  map[string]string // key -> local path
	existing map[string]bool
}

func newFakeStore(bucket string) *fakeStore {
	return &fakeStore{
		bucket:   bucket,
		uploads:  map[string]string{},
		existing: map[string]bool{},
	}
}

func (f *fakeStore) Upload(_ context.Context, localPath, key string) (string, error) {
	f.uploads[key] = localPath
	return fmt.Sprintf("s3://%s/%s", f.bucket, key), nil
}

func (f *fakeStore) Download(context.Context, string, string) error { return nil }

func (f *fakeStore) List(context.Context, provider.ListOptions) (*provider.ListResult, error) {
	return &provider.ListResult{}, nil
}

func (f *fakeStore) Head(_ context.Context, key string) (*provider.ObjectMeta, error) {
	if !f.existing[key] {
		return nil, &provider.ProviderError{Op: "Head", Bucket: f.bucket, Key: key, Err: provider.ErrNotFound}
	}
	return &provider.ObjectMeta{ObjectSummary: provider.ObjectSummary{Key: key}}, nil
}

func (f *fakeStore) EnsureBucket(context.Context) error { return nil }
func (f *fakeStore) Bucket() string                     { return f.bucket }
func (f *fakeStore) Close() error                       { return nil }

func testFrame(t *testing.T) *frame.Frame {
	t.Helper()
	fr, err := frame.New([]string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
	require.NoError(t, err)
	return fr
}

func TestStage_RemotePassThrough(t *testing.T) {
	store := newFakeStore("bucket")
	s := New(store, t.TempDir(), "output/utils", nil)

	uri, err := s.Stage(context.Background(), Source{URI: "s3://other-bucket/data/train.csv"}, "train", FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "s3://other-bucket/data/train.csv", uri)
	assert.Empty(t, store.uploads)
}

func TestStage_RejectsNonRemoteURI(t *testing.T) {
	s := New(newFakeStore("bucket"), t.TempDir(), "output/utils", nil)

	_, err := s.Stage(context.Background(), Source{URI: "http://example.com/train.csv"}, "train", FormatCSV)
	assert.Error(t, err)
}

func TestStage_FrameCSV(t *testing.T) {
	store := newFakeStore("bucket")
	scratch := t.TempDir()
	s := New(store, scratch, "output/utils", nil)

	uri, err := s.Stage(context.Background(), Source{Frame: testFrame(t)}, "train", FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/output/utils/train.csv", uri)

	local := store.uploads["output/utils/train.csv"]
	require.NotEmpty(t, local)
	assert.Equal(t, filepath.Join(scratch, "train.csv"), local)

	back, err := frame.LoadCSVFile(local)
	require.NoError(t, err)
	assert.Equal(t, 2, back.Len())
}

func TestStage_FrameParquet(t *testing.T) {
	store := newFakeStore("bucket")
	s := New(store, t.TempDir(), "output/utils", nil)

	uri, err := s.Stage(context.Background(), Source{Frame: testFrame(t)}, "test", FormatParquet)
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/output/utils/test.parquet", uri)
}

func TestStage_LocalCSVUploadsAsIs(t *testing.T) {
	store := newFakeStore("bucket")
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644))

	s := New(store, t.TempDir(), "output/utils", nil)

	uri, err := s.Stage(context.Background(), Source{LocalPath: csvPath}, "train", FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/output/utils/train.csv", uri)
	assert.Equal(t, csvPath, store.uploads["output/utils/train.csv"])
}

func TestStage_LocalCSVConvertsToParquet(t *testing.T) {
	store := newFakeStore("bucket")
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "train.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b\n1,2\n"), 0o644))

	scratch := t.TempDir()
	s := New(store, scratch, "output/utils", nil)

	uri, err := s.Stage(context.Background(), Source{LocalPath: csvPath}, "train", FormatParquet)
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/output/utils/train.parquet", uri)
	assert.Equal(t, filepath.Join(scratch, "train.parquet"), store.uploads["output/utils/train.parquet"])
}

func TestStage_UnknownFormat(t *testing.T) {
	s := New(newFakeStore("bucket"), t.TempDir(), "output/utils", nil)

	_, err := s.Stage(context.Background(), Source{Frame: testFrame(t)}, "train", Format("xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestSource_Validate(t *testing.T) {
	assert.ErrorIs(t, Source{}.Validate(), ErrInvalidSource)
	assert.ErrorIs(t, Source{URI: "s3://b/k", LocalPath: "/tmp/x"}.Validate(), ErrInvalidSource)
	assert.NoError(t, Source{URI: "s3://b/k"}.Validate())
}

func writeModelTarball(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	content := []byte("weights")
	require.NoError(t, tw.WriteHeader(&tar.Header{
		Name: "model/learner.bin", Mode: 0o644, Size: int64(len(content)), Typeflag: tar.TypeReg,
	}))
	_, err = tw.Write(content)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestStageModel_LocalTarball(t *testing.T) {
	store := newFakeStore("bucket")
	dir := t.TempDir()
	tarball := filepath.Join(dir, "model.tar.gz")
	writeModelTarball(t, tarball)

	s := New(store, t.TempDir(), "output/utils", nil)

	uri, err := s.StageModel(context.Background(), tarball, "model")
	require.NoError(t, err)

	assert.Equal(t, "s3://bucket/model/model.tar.gz", uri)
}

func TestStageModel_RejectsNonTarball(t *testing.T) {
	store := newFakeStore("bucket")
	dir := t.TempDir()
	plain := filepath.Join(dir, "model.bin")
	require.NoError(t, os.WriteFile(plain, []byte("raw weights"), 0o644))

	s := New(store, t.TempDir(), "output/utils", nil)

	_, err := s.StageModel(context.Background(), plain, "model")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotTarball)
}

func TestStageModel_RemoteHeadCheck(t *testing.T) {
	store := newFakeStore("bucket")
	store.existing["models/model.tar.gz"] = true

	s := New(store, t.TempDir(), "output/utils", nil)

	uri, err := s.StageModel(context.Background(), "s3://bucket/models/model.tar.gz", "model")
	require.NoError(t, err)
	assert.Equal(t, "s3://bucket/models/model.tar.gz", uri)

	_, err = s.StageModel(context.Background(), "s3://bucket/models/missing.tar.gz", "model")
	require.Error(t, err)
	assert.True(t, provider.IsNotFound(err))
}

func TestStageModel_RemoteOtherBucketPassesThrough(t *testing.T) {
	s := New(newFakeStore("bucket"), t.TempDir(), "output/utils", nil)

	uri, err := s.StageModel(context.Background(), "s3://elsewhere/models/model.tar.gz", "model")
	require.NoError(t, err)
	assert.Equal(t, "s3://elsewhere/models/model.tar.gz", uri)
}
