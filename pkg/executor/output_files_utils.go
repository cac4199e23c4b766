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

package executor

import (
	"io/ioutil"
	"os"
	"path"
	"strings"

	"github.com/pkg/errors"
)

func getBinaryNameFromCommand(command string) (string, error) {
	_, name := path.Split(command)
	nameSplit := strings.Split(name, " ")
	if len(nameSplit) == 0 {
		return "", errors.Errorf("failed to extract command name from %q", command)
	}
	return nameSplit[0], nil
}

// createExecutorOutputFiles creates a temporary directory in working directory
// with stdout & stderr files for given command.
func createExecutorOutputFiles(command, prefix string) (stdout, stderr *os.File, err error) {
	if len(command) == 0 {
		return nil, nil, errors.New("empty command string")
	}

	commandName, err := getBinaryNameFromCommand(command)
	if err != nil {
		return nil, nil, err
	}

	pwd, err := os.Getwd()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to get working directory")
	}
	outputDir, err := ioutil.TempDir(pwd, prefix+"_"+commandName+"_")
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create output directory for %q", commandName)
	}
	// TempDir creates the directory with mode 0700 and output files
	// have to stay readable for other users.
	err = os.Chmod(outputDir, 0755)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to set permissions on directory %q", outputDir)
	}

	stdoutFileName := path.Join(outputDir, "stdout")
	stdout, err = os.Create(stdoutFileName)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to create stdout file %q", stdoutFileName)
	}

	stderrFileName := path.Join(outputDir, "stderr")
	stderr, err = os.Create(stderrFileName)
	if err != nil {
		os.Remove(stdoutFileName)
		return nil, nil, errors.Wrapf(err, "failed to create stderr file %q", stderrFileName)
	}

	return stdout, stderr, err
}

// openFile opens a file for reading, returning a descriptive error when it is not there.
func openFile(filePath string) (*os.File, error) {
	if _, err := os.Stat(filePath); err != nil {
		return nil, errors.Wrapf(err, "os.Stat on file %q failed", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "os.Open on file %q failed", filePath)
	}
	return file, nil
}
