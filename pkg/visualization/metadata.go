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

package visualization

// ExperimentMetadata encodes the metadata which is related to an experiment run.
// This currently only contains the experiment id, but is intended to encode
// the experiment environment (hardware and software configuration),
// the machines involved in the experiment, etc.
type ExperimentMetadata struct {
	experimentID string
}

// NewExperimentMetadata is the ExperimentMetadata constructor and returns
// a new ExperimentMetadata with a specific id.
func NewExperimentMetadata(ID string) *ExperimentMetadata {
	return &ExperimentMetadata{
		ID,
	}
}

// String returns a printable string with all experiment metadata.
// This is currently only the experiment id.
func (metadata *ExperimentMetadata) String() string {
	return "Experiment id: " + metadata.experimentID
}
