package predictor

import (
	"fmt"
)

// LocalPredictor is a trained predictor materialized on local disk, produced
// by ToLocalPredictor after download and extraction.
type LocalPredictor interface {
	// Dir returns the directory holding the extracted model artifact.
	Dir() string
}

// Loader builds a LocalPredictor from an extracted model directory.
type Loader func(localDir string) (LocalPredictor, error)

// TypeSpec describes one predictor variant: its name, the entry point
// scripts executed inside the training and serving containers, and the
// loader used to open a downloaded model locally.
type TypeSpec struct {
	Name            string
	TrainEntryPoint string
	ServeEntryPoint string
	Loader          Loader
}

// localModel is the stock LocalPredictor for directory-backed models.
type localModel struct {
	dir string
}

func (m *localModel) Dir() string { return m.dir }

func dirLoader(localDir string) (LocalPredictor, error) {
	return &localModel{dir: localDir}, nil
}

// Tabular is the predictor type for tabular data.
func Tabular() TypeSpec {
	return TypeSpec{
		Name:            "tabular",
		TrainEntryPoint: "train.py",
		ServeEntryPoint: "tabular_serve.py",
		Loader:          dirLoader,
	}
}

// Text is the predictor type for text data.
func Text() TypeSpec {
	return TypeSpec{
		Name:            "text",
		TrainEntryPoint: "train.py",
		ServeEntryPoint: "text_serve.py",
		Loader:          dirLoader,
	}
}

// TypeByName resolves a stock predictor type from its persisted name.
func TypeByName(name string) (TypeSpec, error) {
	switch name {
	case "tabular":
		return Tabular(), nil
	case "text":
		return Text(), nil
	default:
		return TypeSpec{}, fmt.Errorf("unknown predictor type %q", name)
	}
}
