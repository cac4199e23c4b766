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

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/intelsdi-x/snapload/pkg/benchmark"
	"github.com/intelsdi-x/snapload/pkg/compose"
	"github.com/intelsdi-x/snapload/pkg/experiment"
	"github.com/intelsdi-x/snapload/pkg/snapshots"
	"github.com/intelsdi-x/snapload/pkg/utils/sysctl"
)

// validateArguments checks the CLI positionals and resolves them to absolute
// paths, so that later working directory changes do not affect them.
func validateArguments() (snapshotsDir string, outputDir string) {
	snapshotsDir = snapshotsDirArg.Value()
	if snapshotsDir == "" {
		logrus.Errorf("Usage: %s <snapshots_dir> [<output_dir>]", appName)
		os.Exit(experiment.ExUsage)
	}

	err := snapshots.ValidateDir(snapshotsDir)
	if err != nil {
		logrus.Errorf("Invalid snapshots directory: %v", err)
		os.Exit(experiment.ExUsage)
	}

	snapshotsDir, err = filepath.Abs(snapshotsDir)
	if err != nil {
		logrus.Errorf("Cannot resolve snapshots directory path: %v", err)
		os.Exit(experiment.ExUsage)
	}

	outputDir, err = filepath.Abs(outputDirArg.Value())
	if err != nil {
		logrus.Errorf("Cannot resolve output directory path: %v", err)
		os.Exit(experiment.ExUsage)
	}

	err = os.MkdirAll(outputDir, 0755)
	if err != nil {
		logrus.Errorf("Cannot create output directory %q: %v", outputDir, err)
		os.Exit(experiment.ExUsage)
	}

	return snapshotsDir, outputDir
}

// validateProfiles checks that each profile has its orchestration definition
// in place and pins definitions to absolute paths.
func validateProfiles(profiles []benchmark.Profile) []benchmark.Profile {
	validated := []benchmark.Profile{}
	for _, profile := range profiles {
		definitionPath, err := filepath.Abs(profile.DefinitionPath)
		if err != nil {
			logrus.Errorf("Cannot resolve orchestration definition path of profile %q: %v", profile.Name, err)
			os.Exit(experiment.ExUsage)
		}

		_, err = os.Stat(definitionPath)
		if err != nil {
			logrus.Errorf("Missing orchestration definition for profile %q: %v", profile.Name, err)
			os.Exit(experiment.ExUsage)
		}

		profile.DefinitionPath = definitionPath
		validated = append(validated, profile)
	}

	return validated
}

// checkDropCachesKey warns user when the kernel does not expose the page cache drop interface.
func checkDropCachesKey() {
	value, err := sysctl.Get("vm.drop_caches")
	if err != nil {
		logrus.Warn("Could not read vm.drop_caches sysctl key: " + err.Error() + ". Cold cache baselines will not be possible on this host.")
		return
	}
	logrus.Debugf("vm.drop_caches sysctl value: %q", value)
}

// checkPrivilegeEscalation warns user when page cache drops will not be able to elevate privileges.
func checkPrivilegeEscalation() {
	if os.Geteuid() == 0 {
		return
	}
	_, err := exec.LookPath("sudo")
	if err != nil {
		logrus.Warn("Not running as root and sudo is not available. Page cache drops will fail.")
	}
}

// checkComposeBinary warns user when the orchestration tool cannot be found in PATH.
func checkComposeBinary() {
	binary := compose.DefaultConfig().PathToBinary
	_, err := exec.LookPath(binary)
	if err != nil {
		logrus.Warnf("Orchestration tool %q not found in PATH. Benchmark runs will fail.", binary)
	}
}

// validateOS checks experiment local OS environment to help identify potential issues.
// Note: in case of some requirements not met, only warns user.
func validateOS() {
	checkDropCachesKey()
	checkPrivilegeEscalation()
	checkComposeBinary()
}
