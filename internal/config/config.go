// Package config loads curve parameter sets and checkpoint lists from
// YAML files. The loader only parses and normalizes; curve-level
// validation (primality, generator on curve, nonsingularity) happens in
// the curve constructor so there is exactly one validation path.
package config

import (
	"math/big"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/srflab/srf311/pkg/srf"
)

// File is the on-disk layout of a parameter file.
type File struct {
	Name        string           `yaml:"name"`
	Curve       CurveSpec        `yaml:"curve"`
	Annotations Annotations      `yaml:"annotations"`
	Checkpoints []CheckpointSpec `yaml:"checkpoints"`
}

// CurveSpec holds the curve integers as strings, decimal or 0x-hex.
type CurveSpec struct {
	P  string `yaml:"p"`
	A  string `yaml:"a"`
	B  string `yaml:"b"`
	Gx string `yaml:"gx"`
	Gy string `yaml:"gy"`
}

// Annotations carries published group-structure claims. They are copied
// into srf.Params verbatim and never consumed by the arithmetic kernel.
type Annotations struct {
	Order string `yaml:"order"`
	Trace string `yaml:"trace"`
}

// CheckpointSpec is one checkpoint scalar with an optional label.
type CheckpointSpec struct {
	K     string `yaml:"k"`
	Label string `yaml:"label"`
}

// Load reads and parses a parameter file.
func Load(path string) (*srf.Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read params file %s", path)
	}
	params, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse params file %s", path)
	}
	return params, nil
}

// Parse decodes a parameter file from memory.
func Parse(data []byte) (*srf.Params, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode yaml")
	}
	return f.Params()
}

// Params converts the file into an srf.Params value.
func (f *File) Params() (*srf.Params, error) {
	params := &srf.Params{Name: f.Name}

	var err error
	if params.P, err = parseBig(f.Curve.P, "curve.p"); err != nil {
		return nil, err
	}
	if params.A, err = parseBig(f.Curve.A, "curve.a"); err != nil {
		return nil, err
	}
	if params.B, err = parseBig(f.Curve.B, "curve.b"); err != nil {
		return nil, err
	}
	if params.Gx, err = parseBig(f.Curve.Gx, "curve.gx"); err != nil {
		return nil, err
	}
	if params.Gy, err = parseBig(f.Curve.Gy, "curve.gy"); err != nil {
		return nil, err
	}

	if f.Annotations.Order != "" {
		if params.Order, err = parseBig(f.Annotations.Order, "annotations.order"); err != nil {
			return nil, err
		}
	}
	if f.Annotations.Trace != "" {
		if params.TraceOfFrobenius, err = parseBig(f.Annotations.Trace, "annotations.trace"); err != nil {
			return nil, err
		}
	}

	if len(f.Checkpoints) == 0 {
		return nil, errors.New("at least one checkpoint is required")
	}
	for i, cp := range f.Checkpoints {
		k, err := parseBig(cp.K, "checkpoints.k")
		if err != nil {
			return nil, errors.Wrapf(err, "checkpoint %d", i)
		}
		params.Checkpoints = append(params.Checkpoints, srf.Checkpoint{K: k, Label: cp.Label})
	}
	return params, nil
}

// parseBig parses a decimal or 0x-prefixed hex integer.
func parseBig(s, name string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Errorf("missing required integer %s", name)
	}

	base := 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	z, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, errors.Errorf("invalid integer for %s: %q", name, s)
	}
	return z, nil
}
