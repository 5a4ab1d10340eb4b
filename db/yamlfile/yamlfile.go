// Package yamlfile reads the dataset from a YAML file, so that it can be
// edited without a rebuild.
package yamlfile

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/graph/model"
	"gopkg.in/yaml.v3"
)

type DB struct {
	path string
}

func New(path string) *DB {
	return &DB{path: path}
}

// Dataset reads and validates the file on every call.
func (y *DB) Dataset(ctx context.Context) (*model.Dataset, error) {
	f, err := os.Open(y.path)
	if err != nil {
		return nil, errors.Wrap(err, "open dataset")
	}
	defer f.Close()
	ds, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset '%s'", y.path)
	}
	return ds, nil
}

// Decode reads one dataset document. JSON input works as well, since JSON is
// a subset of YAML.
func Decode(r io.Reader) (*model.Dataset, error) {
	ds := &model.Dataset{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(ds); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	if err := db.Validate(ds); err != nil {
		return nil, err
	}
	return ds, nil
}

func Encode(w io.Writer, ds *model.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ds); err != nil {
		return errors.Wrap(err, "encode")
	}
	return enc.Close()
}
