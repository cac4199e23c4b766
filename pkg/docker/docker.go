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

package docker

import (
	dockerclient "github.com/fsouza/go-dockerclient"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/intelsdi-x/snapload/pkg/conf"
	"github.com/intelsdi-x/snapload/pkg/utils/err_collection"
)

// EndpointFlag is the Docker daemon endpoint used for the container sweep.
var EndpointFlag = conf.NewStringFlag(
	"docker_endpoint",
	"Docker daemon endpoint used to remove containers between benchmark runs.",
	"unix:///var/run/docker.sock",
)

// client is the part of the Docker API the cleaner needs.
type client interface {
	ListContainers(opts dockerclient.ListContainersOptions) ([]dockerclient.APIContainers, error)
	RemoveContainer(opts dockerclient.RemoveContainerOptions) error
}

// Cleaner removes containers left behind by benchmark runs. Compose brings
// the containers down on its own in the happy path, so the sweep mostly
// matters after failed or interrupted runs.
type Cleaner struct {
	docker client
}

// NewCleaner returns a Cleaner talking to the Docker daemon on given endpoint.
func NewCleaner(endpoint string) (Cleaner, error) {
	docker, err := dockerclient.NewClient(endpoint)
	if err != nil {
		return Cleaner{}, errors.Wrapf(err, "unable to create Docker client for endpoint %q", endpoint)
	}

	return Cleaner{docker: docker}, nil
}

// RemoveAllContainers forcibly removes all containers known to the daemon,
// running or stopped, together with their anonymous volumes. It attempts
// every container even when some removals fail.
func (c Cleaner) RemoveAllContainers() error {
	containers, err := c.docker.ListContainers(dockerclient.ListContainersOptions{All: true})
	if err != nil {
		return errors.Wrap(err, "unable to retrieve list of containers")
	}

	var errColl errcollection.ErrorCollection
	for _, container := range containers {
		log.Debugf("Removing container %q", container.ID)

		err := c.docker.RemoveContainer(dockerclient.RemoveContainerOptions{
			ID:            container.ID,
			RemoveVolumes: true,
			Force:         true,
		})
		if err != nil {
			errColl.Add(errors.Wrapf(err, "unable to remove container %q", container.ID))
		}
	}

	return errColl.GetErrIfAny()
}
