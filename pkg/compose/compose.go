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

package compose

import (
	"fmt"

	"github.com/intelsdi-x/snapload/pkg/conf"
	"github.com/intelsdi-x/snapload/pkg/executor"
)

const name = "Docker Compose"

// PathFlag is the command used to invoke docker-compose.
var PathFlag = conf.NewStringFlag(
	"compose_path",
	"Command used to invoke docker-compose.",
	"docker-compose",
)

// Config is a config for a docker-compose controlled container workload.
// SnapshotPath is exported to the services through the SNAPSHOT_PATH
// environment variable, so the compose definition decides how the snapshot
// gets mounted and loaded.
type Config struct {
	PathToBinary   string
	DefinitionPath string
	SnapshotPath   string
}

// DefaultConfig is a constructor for Config with default parameters.
func DefaultConfig() Config {
	return Config{
		PathToBinary: PathFlag.Value(),
	}
}

// Compose is a launcher for a docker-compose controlled container workload.
// The invocation runs in the foreground and terminates when the first
// container exits, so load time measured by the workload covers the whole
// snapshot load.
type Compose struct {
	exec executor.Executor
	conf Config
}

// New is a constructor for Compose.
func New(exec executor.Executor, config Config) Compose {
	return Compose{
		exec: exec,
		conf: config,
	}
}

func (c Compose) buildCommand() string {
	return fmt.Sprintf("SNAPSHOT_PATH=%s %s -f %s up --abort-on-container-exit",
		c.conf.SnapshotPath,
		c.conf.PathToBinary,
		c.conf.DefinitionPath)
}

// Launch starts the workload (process or group of processes). It returns a workload
// represented as a Task Handle instance.
// Error is returned when Launcher is unable to start a job.
func (c Compose) Launch() (executor.TaskHandle, error) {
	return c.exec.Execute(c.buildCommand())
}

// Name returns human readable name for job.
func (c Compose) Name() string {
	return name
}
