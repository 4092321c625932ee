package io

import (
	encjson "encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sunburst/pkg/errors"
	"github.com/matzehuels/sunburst/pkg/tree"
)

// ReadJSON decodes a JSON tree document from r.
//
// The input must be a single nested node object as described in the
// package documentation. Structural decode failures (for example a
// "children" field that is not an array) are reported with the
// MISSING_STRUCTURE code; the decoded tree is validated with
// [tree.Validate] before being returned, so malformed weights and
// half-set angle overrides fail here rather than producing broken
// geometry later. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	var root tree.Node
	dec := encjson.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return nil, decodeError(err)
	}
	if err := tree.Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// ReadTOML decodes a TOML tree document from r. The same validation as
// [ReadJSON] applies.
func ReadTOML(r io.Reader) (*tree.Node, error) {
	var root tree.Node
	if _, err := toml.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMissingStructure, err, "decode tree")
	}
	if err := tree.Validate(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// Import reads a tree file at path, dispatching on the file extension:
// .toml is decoded as TOML, everything else as JSON.
//
// The error wraps the underlying cause with the file path for context.
func Import(path string) (*tree.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var root *tree.Node
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		root, err = ReadTOML(f)
	} else {
		root, err = ReadJSON(f)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

// decodeError maps JSON decoder failures onto the error taxonomy:
// type mismatches on the tree shape are MISSING_STRUCTURE, everything
// else is plain invalid input.
func decodeError(err error) error {
	var typeErr *encjson.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		return errors.Wrap(errors.ErrCodeMissingStructure, err,
			"field %q has the wrong shape", typeErr.Field)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode tree")
}
