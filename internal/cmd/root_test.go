package cmd

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetVersionInfo(t *testing.T) {
	origVersion := versionInfo.Version
	origCommit := versionInfo.Commit
	origBuildDate := versionInfo.BuildDate
	defer func() {
		versionInfo.Version = origVersion
		versionInfo.Commit = origCommit
		versionInfo.BuildDate = origBuildDate
	}()

	tests := []struct {
		name      string
		version   string
		commit    string
		buildDate string
	}{
		{
			name:      "set all values",
			version:   "1.0.0",
			commit:    "abc123",
			buildDate: "2026-01-15",
		},
		{
			name:      "set dev version",
			version:   "dev",
			commit:    "HEAD",
			buildDate: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersionInfo(tt.version, tt.commit, tt.buildDate)

			assert.Equal(t, tt.version, versionInfo.Version)
			assert.Equal(t, tt.commit, versionInfo.Commit)
			assert.Equal(t, tt.buildDate, versionInfo.BuildDate)
		})
	}
}

func TestExitError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := exitError(3, "Failed to connect", underlying)

	var ce *cliError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.code)
	assert.Equal(t, "Failed to connect: connection refused", ce.Error())
	assert.True(t, errors.Is(err, underlying))
}

func TestExitError_NoUnderlying(t *testing.T) {
	err := exitError(2, "Invalid argument", nil)
	assert.Equal(t, "Invalid argument", err.Error())
}

func TestParseSource(t *testing.T) {
	src := parseSource("s3://bucket/data/train.csv")
	assert.Equal(t, "s3://bucket/data/train.csv", src.URI)
	assert.Empty(t, src.LocalPath)

	src = parseSource("data/train.csv")
	assert.Empty(t, src.URI)
	assert.Equal(t, "data/train.csv", src.LocalPath)
}

func TestCommandRegistration(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"fit", "status", "deploy", "predict", "invoke", "results", "cleanup", "serve", "version"} {
		assert.True(t, names[want], "command %s should be registered", want)
	}
}
