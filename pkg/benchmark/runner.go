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

package benchmark

import (
	"fmt"
	"io/ioutil"
	"os"
	"path"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/intelsdi-x/snapload/pkg/executor"
	"github.com/intelsdi-x/snapload/pkg/experiment"
	"github.com/intelsdi-x/snapload/pkg/loadtime"
	"github.com/intelsdi-x/snapload/pkg/snapshots"
	"github.com/intelsdi-x/snapload/pkg/utils/err_collection"
)

// CacheDropper empties the OS page cache so that every run starts with a
// cold cache baseline.
type CacheDropper interface {
	Drop() error
}

// ContainerCleaner removes containers left behind by a benchmark run.
type ContainerCleaner interface {
	RemoveAllContainers() error
}

// LauncherFactory builds a launcher that runs given snapshot under given profile.
type LauncherFactory func(profile Profile, snapshot snapshots.Snapshot) executor.Launcher

// Config holds the benchmark runner parameters.
type Config struct {
	// SnapshotsDir is scanned for snapshot files.
	SnapshotsDir string
	// OutputDir is the root for all result artifacts.
	OutputDir string
	// Profiles are run in order, each over all discovered snapshots.
	Profiles []Profile
	// StopOnError aborts the experiment after the first failed run.
	StopOnError bool
	// ShowProgress enables the progress bar.
	ShowProgress bool
	// ExperimentDirectory is the root for per run log directories.
	// Empty value disables them.
	ExperimentDirectory string
}

// Runner drives the load time benchmark. It executes every configured
// profile over every discovered snapshot, strictly one run at a time, and
// merges the per profile results afterwards.
type Runner struct {
	config          Config
	dropper         CacheDropper
	cleaner         ContainerCleaner
	launcherFactory LauncherFactory

	bar          *pb.ProgressBar
	totalRuns    int
	finishedRuns int
}

// NewRunner creates a benchmark runner for given configuration and collaborators.
func NewRunner(config Config, dropper CacheDropper, cleaner ContainerCleaner, launcherFactory LauncherFactory) *Runner {
	return &Runner{
		config:          config,
		dropper:         dropper,
		cleaner:         cleaner,
		launcherFactory: launcherFactory,
	}
}

// Run executes all configured profiles sequentially. The next profile starts
// only after every snapshot of the previous one has completed, so that cache
// dropping and container cleanup never overlap between profiles.
func (r *Runner) Run() error {
	err := snapshots.ValidateDir(r.config.SnapshotsDir)
	if err != nil {
		return err
	}

	discovered, err := snapshots.Discover(r.config.SnapshotsDir)
	if err != nil {
		return err
	}
	if len(discovered) == 0 {
		log.Warnf("No %q files found in %q", "*"+snapshots.Extension, r.config.SnapshotsDir)
	}

	r.totalRuns = len(r.config.Profiles) * len(discovered)
	r.finishedRuns = 0

	// Initialize progress bar when log level is error.
	if r.config.ShowProgress {
		r.bar = pb.StartNew(r.totalRuns)
		r.bar.ShowCounters = false
		r.bar.ShowTimeLeft = true
		defer r.bar.Finish()
	}

	for _, profile := range r.config.Profiles {
		err = r.runProfile(profile, discovered)
		if err != nil {
			return err
		}
	}

	return nil
}

// runProfile measures all snapshots under a single profile. Each run is
// followed by a container sweep regardless of its outcome, so that leftover
// state never contaminates the next measurement.
func (r *Runner) runProfile(profile Profile, discovered []snapshots.Snapshot) error {
	log.Infof("Starting profile %q with %d snapshots", profile.Name, len(discovered))

	for _, snapshot := range discovered {
		phaseName := path.Join(profile.Name, snapshot.Name)

		err := r.executeRun(profile, snapshot, phaseName)

		// Collecting all the errors that might have been encountered.
		errColl := &errcollection.ErrorCollection{}
		errColl.Add(err)
		errColl.Add(r.cleaner.RemoveAllContainers())

		err = errColl.GetErrIfAny()
		if err != nil {
			log.Errorf("Benchmark run failed (%s): %+v", phaseName, err)
			if r.config.StopOnError {
				return err
			}
		}
		r.finishedRuns++
	}

	return nil
}

// executeRun performs a single measurement: cold cache drop, containerized
// snapshot load run to foreground, exit code check.
func (r *Runner) executeRun(profile Profile, snapshot snapshots.Snapshot, phaseName string) error {
	// Make progress bar display the current run.
	if r.bar != nil {
		prefix := fmt.Sprintf("[%02d / %02d] %s", r.finishedRuns+1, r.totalRuns, phaseName)
		r.bar.Prefix(prefix)
		// Changes to progress bar should be applied immediately
		r.bar.AlwaysUpdate = true
		r.bar.Update()
		r.bar.AlwaysUpdate = false
		defer r.bar.Add(1)
	}

	log.Infof("Starting %s", phaseName)

	if r.config.ExperimentDirectory != "" {
		err := experiment.CreateRepetitionDir(r.config.ExperimentDirectory, phaseName, 0)
		if err != nil {
			return errors.Wrapf(err, "cannot create repetition log directory in %s", phaseName)
		}
	}

	err := r.dropper.Drop()
	if err != nil {
		log.Warnf("Page cache was not dropped, %s would run against a warm cache", phaseName)
		return errors.Wrapf(err, "cannot drop page cache in %s", phaseName)
	}

	launcher := r.launcherFactory(profile, snapshot)
	taskHandle, err := launcher.Launch()
	if err != nil {
		return errors.Wrapf(err, "cannot launch %s in %s", launcher.Name(), phaseName)
	}
	taskHandle.Wait(0)

	exitCode, err := taskHandle.ExitCode()
	if err != nil {
		return errors.Wrapf(err, "cannot obtain exit code of %s in %s", launcher.Name(), phaseName)
	}
	if exitCode != 0 {
		return errors.Errorf("executing %s returned with exit code %d in %s", launcher.Name(), exitCode, phaseName)
	}

	return nil
}

// AggregateResults merges the per profile results into a single CSV with
// exactly one header, promotes all remaining profile artifacts to the output
// directory root and removes the profile subdirectories.
func (r *Runner) AggregateResults() error {
	if len(r.config.Profiles) == 0 {
		return errors.New("no profiles configured")
	}

	allResults := []loadtime.Results{}
	resultPaths := []string{}
	for _, profile := range r.config.Profiles {
		resultPath := path.Join(r.config.OutputDir, profile.Name, loadtime.FileName)
		results, err := loadtime.File(resultPath)
		if err != nil {
			return errors.Wrapf(err, "cannot read results of profile %q", profile.Name)
		}
		fmt.Println(results.String())

		allResults = append(allResults, results)
		resultPaths = append(resultPaths, resultPath)
	}

	merged := allResults[0]
	for _, results := range allResults[1:] {
		merged = loadtime.Merge(merged, results)
	}
	err := loadtime.WriteFile(path.Join(r.config.OutputDir, loadtime.FileName), merged)
	if err != nil {
		return err
	}

	for _, resultPath := range resultPaths {
		err = os.Remove(resultPath)
		if err != nil {
			return errors.Wrapf(err, "cannot remove consumed results file %q", resultPath)
		}
	}

	for _, profile := range r.config.Profiles {
		profileDir := path.Join(r.config.OutputDir, profile.Name)
		err = promoteArtifacts(profileDir, r.config.OutputDir)
		if err != nil {
			return err
		}
		err = os.RemoveAll(profileDir)
		if err != nil {
			return errors.Wrapf(err, "cannot remove profile directory %q", profileDir)
		}
	}

	return nil
}

// promoteArtifacts moves all entries of profileDir to outputDir. An empty
// profile directory is a no-op, not an error.
func promoteArtifacts(profileDir string, outputDir string) error {
	entries, err := ioutil.ReadDir(profileDir)
	if err != nil {
		return errors.Wrapf(err, "cannot list profile directory %q", profileDir)
	}

	for _, entry := range entries {
		oldPath := path.Join(profileDir, entry.Name())
		newPath := path.Join(outputDir, entry.Name())
		err = os.Rename(oldPath, newPath)
		if err != nil {
			return errors.Wrapf(err, "cannot promote artifact %q to %q", oldPath, newPath)
		}
	}

	return nil
}
