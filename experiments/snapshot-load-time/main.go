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
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/intelsdi-x/snapload/pkg/benchmark"
	"github.com/intelsdi-x/snapload/pkg/compose"
	"github.com/intelsdi-x/snapload/pkg/conf"
	"github.com/intelsdi-x/snapload/pkg/docker"
	"github.com/intelsdi-x/snapload/pkg/executor"
	"github.com/intelsdi-x/snapload/pkg/experiment"
	"github.com/intelsdi-x/snapload/pkg/experiment/logger"
	"github.com/intelsdi-x/snapload/pkg/isolation"
	"github.com/intelsdi-x/snapload/pkg/loadtime"
	"github.com/intelsdi-x/snapload/pkg/pagecache"
	"github.com/intelsdi-x/snapload/pkg/snapshots"
	"github.com/intelsdi-x/snapload/pkg/utils/errutil"
	"github.com/intelsdi-x/snapload/pkg/utils/uuid"
)

var (
	snapshotsDirArg = conf.NewStringArg("snapshots_dir", "Directory with container snapshots (*.snapshot) to benchmark.", "")
	outputDirArg    = conf.NewStringArg("output_dir", "Directory where results are stored.", "mri_output")
	appName         = os.Args[0]
)

func main() {
	// Preparing application - setting name, help, parsing flags etc.
	experimentStart := time.Now()
	experiment.Configure()

	// Generate an experiment ID.
	uid := uuid.New()

	// Validate arguments and preconditions. Paths have to be resolved before
	// the experiment directory becomes the working directory.
	snapshotsDir, outputDir := validateArguments()
	profiles := validateProfiles(benchmark.DefaultProfiles())
	validateOS()

	discovered, err := snapshots.Discover(snapshotsDir)
	errutil.CheckWithContext(err, "Cannot list snapshot files")

	// Initialize logger.
	experimentDirectory := logger.Initialize(appName, uid)

	// Connect to metadata database when one is configured.
	var metadata *experiment.Metadata
	if conf.CassandraAddress.Value() != conf.MetadataDisabledValue {
		metadata = experiment.NewMetadata(uid, experiment.MetadataConfigFromFlags())
		err = metadata.Connect()
		errutil.CheckWithContext(err, "Cannot connect to metadata database")

		// Write configuration as metadata.
		err = metadata.RecordFlags()
		errutil.CheckWithContext(err, "Cannot save flags to metadata database")

		// Store SNAPLOAD_ environment configuration.
		err = metadata.RecordEnv(conf.EnvironmentPrefix)
		errutil.CheckWithContext(err, "Cannot save environment metadata")

		hostname, err := os.Hostname()
		errutil.CheckWithContext(err, "Cannot determine hostname")

		// Record experiment metadata.
		records := map[string]string{
			"command_arguments": strings.Join(os.Args, ","),
			"experiment_name":   appName,
			"host":              hostname,
			"snapshots_dir":     snapshotsDir,
			"output_dir":        outputDir,
			"snapshots_count":   strconv.Itoa(len(discovered)),
			"time":              time.Now().Format(time.RFC822Z),
		}
		err = metadata.RecordMap(records)
		errutil.CheckWithContext(err, "Cannot save metadata")
	}

	// Page cache dropping needs elevated privileges, the orchestration tool
	// runs as the invoking user.
	sudoExecutor := executor.NewLocalIsolated(isolation.Sudo{})
	localExecutor := executor.NewLocal()

	dropper := pagecache.NewDropper(sudoExecutor, pagecache.DropCachesLevelFlag.Value())

	cleaner, err := docker.NewCleaner(docker.EndpointFlag.Value())
	errutil.CheckWithContext(err, "Cannot create Docker client")

	launcherFactory := func(profile benchmark.Profile, snapshot snapshots.Snapshot) executor.Launcher {
		config := compose.DefaultConfig()
		config.DefinitionPath = profile.DefinitionPath
		config.SnapshotPath = snapshot.Path
		return compose.New(localExecutor, config)
	}

	runner := benchmark.NewRunner(
		benchmark.Config{
			SnapshotsDir:        snapshotsDir,
			OutputDir:           outputDir,
			Profiles:            profiles,
			StopOnError:         benchmark.StopOnErrorFlag.Value(),
			ShowProgress:        conf.LogLevel() == logrus.ErrorLevel,
			ExperimentDirectory: experimentDirectory,
		},
		dropper,
		cleaner,
		launcherFactory,
	)

	err = runner.Run()
	if err != nil {
		logrus.Errorf("Experiment failed: %+v", err)
		os.Exit(experiment.ExSoftware)
	}

	err = runner.AggregateResults()
	if err != nil {
		logrus.Errorf("Cannot aggregate results: %+v", err)
		os.Exit(experiment.ExIOErr)
	}

	// Summarize the aggregated results and render them.
	results, err := loadtime.File(path.Join(outputDir, loadtime.FileName))
	errutil.CheckWithContext(err, "Cannot read aggregated results")

	summaries, err := loadtime.Summarize(results)
	errutil.CheckWithContext(err, "Cannot summarize results")

	if metadata != nil {
		err = metadata.RecordMap(experiment.MetadataMap(loadtime.SummaryMap(summaries)))
		errutil.CheckWithContext(err, "Cannot save summary metadata")
	}
	loadtime.Draw(summaries, uid)

	logrus.Infof("Ended experiment %s with uid %s in %s", appName, uid, time.Since(experimentStart).String())
}
