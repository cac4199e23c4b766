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

package experiment

import (
	"os"
	"path"
	"strconv"

	"github.com/pkg/errors"
)

// Exit codes follow the sysexits.h convention.
const (
	// ExUsage represents command line user error exit code.
	ExUsage = 64
	// ExSoftware represents internal software error exit code.
	ExSoftware = 70
	// ExIOErr represents input/output error exit code.
	ExIOErr = 74
)

// CreateExperimentDir creates directory structure for the experiment.
// Current working directory of the process is moved inside it, so relative
// artifacts land in the experiment directory.
func CreateExperimentDir(uuid, appName string) (experimentDirectory string, logFile *os.File, err error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", &os.File{}, errors.Wrap(err, "cannot get working directory")
	}

	experimentDirectory = path.Join(wd, appName, uuid)
	err = os.MkdirAll(experimentDirectory, 0777)
	if err != nil {
		return "", &os.File{}, errors.Wrapf(err, "cannot create experiment directory %q", experimentDirectory)
	}
	err = os.Chdir(experimentDirectory)
	if err != nil {
		return "", &os.File{}, errors.Wrapf(err, "cannot chdir to experiment directory %q", experimentDirectory)
	}

	masterLogFilename := path.Join(experimentDirectory, "master.log")
	logFile, err = os.OpenFile(masterLogFilename, os.O_WRONLY|os.O_CREATE|os.O_SYNC, 0644)
	if err != nil {
		return "", &os.File{}, errors.Wrapf(err, "could not open log file %q", masterLogFilename)
	}

	return experimentDirectory, logFile, nil
}

// CreateRepetitionDir creates folders that store repetition logs inside experiment's directory.
func CreateRepetitionDir(experimentDirectory, phaseName string, repetition int) error {
	repetitionDir := path.Join(experimentDirectory, phaseName, strconv.Itoa(repetition))
	err := os.MkdirAll(repetitionDir, 0777)
	if err != nil {
		return errors.Wrapf(err, "could not create dir %q", repetitionDir)
	}

	err = os.Chdir(repetitionDir)
	if err != nil {
		return errors.Wrapf(err, "could not change directory to %q", repetitionDir)
	}

	return nil
}
