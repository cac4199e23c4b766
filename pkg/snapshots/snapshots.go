// Copyright (c) 2017 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package snapshots

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// Extension is the file name extension that marks container snapshots.
const Extension = ".snapshot"

// Snapshot represents a single container snapshot file to be loaded during benchmark.
type Snapshot struct {
	// Name is the snapshot file name, including extension.
	Name string
	// Path is the absolute path to the snapshot file.
	Path string
}

// ValidateDir checks that given path exists and is a directory.
func ValidateDir(snapshotsDir string) error {
	stat, err := os.Stat(snapshotsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("snapshot directory %q does not exist", snapshotsDir)
		}
		return errors.Wrapf(err, "cannot stat snapshot directory %q", snapshotsDir)
	}

	if !stat.IsDir() {
		return errors.Errorf("snapshot directory %q is not a directory", snapshotsDir)
	}

	return nil
}

// Discover returns all snapshots found in given directory, ordered
// lexicographically by file name. Files without the snapshot extension are
// ignored. Empty result is not an error.
func Discover(snapshotsDir string) ([]Snapshot, error) {
	matches, err := filepath.Glob(filepath.Join(snapshotsDir, "*"+Extension))
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list snapshots in %q", snapshotsDir)
	}

	sort.Strings(matches)

	snapshots := []Snapshot{}
	for _, match := range matches {
		path, err := filepath.Abs(match)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot resolve absolute path of %q", match)
		}

		snapshots = append(snapshots, Snapshot{
			Name: filepath.Base(match),
			Path: path,
		})
	}

	return snapshots, nil
}
