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
	"github.com/intelsdi-x/snapload/pkg/conf"
)

var (
	// SimpleComposeFileFlag points to the orchestration definition without resource limits.
	SimpleComposeFileFlag = conf.NewStringFlag("simple_compose_file", "Docker compose definition used by the simple profile.", "docker-compose-simple.yaml")
	// LimitIOPSComposeFileFlag points to the orchestration definition with an IOPS limit.
	LimitIOPSComposeFileFlag = conf.NewStringFlag("limit_iops_compose_file", "Docker compose definition used by the limit_iops profile.", "docker-compose-iops.yaml")
	// StopOnErrorFlag forces experiment to terminate on error
	StopOnErrorFlag = conf.NewBoolFlag("experiment_stop_on_error", "Stop experiment in a case of error", false)
)

// Profile is one resource constraint variant under which all snapshots are benchmarked.
type Profile struct {
	// Name is the profile identifier and the name of its results subdirectory.
	Name string
	// DefinitionPath points to the orchestration definition file bound to the profile.
	DefinitionPath string
}

// DefaultProfiles returns the two built in profiles in the order they are run.
func DefaultProfiles() []Profile {
	return []Profile{
		{Name: "simple", DefinitionPath: SimpleComposeFileFlag.Value()},
		{Name: "limit_iops", DefinitionPath: LimitIOPSComposeFileFlag.Value()},
	}
}
