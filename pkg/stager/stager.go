// Package stager normalizes training and prediction inputs into canonical
// object storage locations.
//
// A source is either already remote (passed through unchanged), an in-memory
// frame, or a local file. Frames and local files are serialized under the
// local scratch directory and uploaded under the cloud scratch prefix.
package stager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/3leaps/nimbusml/pkg/archive"
	"github.com/3leaps/nimbusml/pkg/cloudurl"
	"github.com/3leaps/nimbusml/pkg/frame"
	"github.com/3leaps/nimbusml/pkg/provider"
)

// Sentinel errors for staging.
var (
	// ErrUnsupportedFormat indicates a wire format the stager cannot produce.
	ErrUnsupportedFormat = errors.New("unsupported data format")

	// ErrNotTarball indicates a local model artifact that is not a gzipped
	// tar archive.
	ErrNotTarball = errors.New("model artifact is not a tarball")

	// ErrInvalidSource indicates a source with zero or multiple variants set.
	ErrInvalidSource = errors.New("exactly one source variant must be set")
)

// Format is the wire format for staged tabular data.
type Format string

const (
	// FormatCSV is the default wire format.
	FormatCSV Format = "csv"

	// FormatParquet stages data as Parquet.
	FormatParquet Format = "parquet"
)

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatCSV:
		return ".csv"
	case FormatParquet:
		return ".parquet"
	default:
		return ""
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatParquet:
		return "application/x-parquet"
	default:
		return ""
	}
}

func (f Format) valid() bool {
	return f == FormatCSV || f == FormatParquet
}

// Source is a tagged variant naming one input: a remote URI, a local file
// path, or an in-memory frame. Exactly one field must be set.
type Source struct {
	URI       string
	LocalPath string
	Frame     *frame.Frame
}

// Validate checks that exactly one variant is set.
func (s Source) Validate() error {
	n := 0
	if s.URI != "" {
		n++
	}
	if s.LocalPath != "" {
		n++
	}
	if s.Frame != nil {
		n++
	}
	if n != 1 {
		return ErrInvalidSource
	}
	return nil
}

// Stager stages inputs through a storage provider.
type Stager struct {
	store       provider.Provider
	localDir    string
	cloudPrefix string
	log         *zap.Logger
}

// New creates a stager writing scratch files under localDir and uploading
// under cloudPrefix in the provider's bucket.
func New(store provider.Provider, localDir, cloudPrefix string, log *zap.Logger) *Stager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stager{
		store:       store,
		localDir:    localDir,
		cloudPrefix: cloudPrefix,
		log:         log,
	}
}

// Stage normalizes src into a remote URI. Remote sources pass through
// unchanged; frames and local files are serialized as format and uploaded
// under name.
func (s *Stager) Stage(ctx context.Context, src Source, name string, format Format) (string, error) {
	if err := src.Validate(); err != nil {
		return "", err
	}
	if !format.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if src.URI != "" {
		if _, err := cloudurl.Parse(src.URI); err != nil {
			return "", err
		}
		return src.URI, nil
	}

	localPath, err := s.materialize(src, name, format)
	if err != nil {
		return "", err
	}

	key := path.Join(s.cloudPrefix, name+format.Ext())
	uri, err := s.store.Upload(ctx, localPath, key)
	if err != nil {
		return "", err
	}

	s.log.Debug("staged input",
		zap.String("name", name),
		zap.String("format", string(format)),
		zap.String("uri", uri))
	return uri, nil
}

// materialize writes the source to the local scratch directory in the
// requested format and returns the file path.
func (s *Stager) materialize(src Source, name string, format Format) (string, error) {
	if src.LocalPath != "" {
		// A local file already in the requested format uploads as-is.
		if strings.EqualFold(filepath.Ext(src.LocalPath), format.Ext()) {
			return src.LocalPath, nil
		}
		if !strings.EqualFold(filepath.Ext(src.LocalPath), ".csv") {
			return "", fmt.Errorf("%w: cannot convert %s", ErrUnsupportedFormat, filepath.Ext(src.LocalPath))
		}

		f, err := frame.LoadCSVFile(src.LocalPath)
		if err != nil {
			return "", err
		}
		src.Frame = f
	}

	if err := os.MkdirAll(s.localDir, 0o755); err != nil {
		return "", fmt.Errorf("stager: create scratch dir: %w", err)
	}

	out := filepath.Join(s.localDir, name+format.Ext())
	file, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("stager: create %s: %w", out, err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		err = src.Frame.WriteCSV(file)
	case FormatParquet:
		err = src.Frame.WriteParquet(file)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

// StageModel stages a trained model artifact. Remote URIs pass through after
// an existence check when the object lives in the stager's bucket. Local
// files must be gzipped tar archives.
func (s *Stager) StageModel(ctx context.Context, modelPath, keyPrefix string) (string, error) {
	if cloudurl.IsRemote(modelPath) {
		obj, err := cloudurl.Parse(modelPath)
		if err != nil {
			return "", err
		}
		if obj.Bucket == s.store.Bucket() {
			if _, err := s.store.Head(ctx, obj.Key); err != nil {
				return "", err
			}
		}
		return modelPath, nil
	}

	if !archive.IsTarGz(modelPath) {
		return "", fmt.Errorf("%w: %s", ErrNotTarball, modelPath)
	}

	key := path.Join(keyPrefix, filepath.Base(modelPath))
	uri, err := s.store.Upload(ctx, modelPath, key)
	if err != nil {
		return "", err
	}

	s.log.Debug("staged model", zap.String("uri", uri))
	return uri, nil
}
