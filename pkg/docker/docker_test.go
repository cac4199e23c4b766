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
	"errors"
	"testing"

	dockerclient "github.com/fsouza/go-dockerclient"
	. "github.com/smartystreets/goconvey/convey"
)

// fakeClient records the remove requests issued by the cleaner.
type fakeClient struct {
	containers []dockerclient.APIContainers
	listErr    error
	removeErr  map[string]error

	listOpts   []dockerclient.ListContainersOptions
	removeOpts []dockerclient.RemoveContainerOptions
}

func (f *fakeClient) ListContainers(opts dockerclient.ListContainersOptions) ([]dockerclient.APIContainers, error) {
	f.listOpts = append(f.listOpts, opts)
	return f.containers, f.listErr
}

func (f *fakeClient) RemoveContainer(opts dockerclient.RemoveContainerOptions) error {
	f.removeOpts = append(f.removeOpts, opts)
	return f.removeErr[opts.ID]
}

func TestRemoveAllContainers(t *testing.T) {
	Convey("While removing all containers", t, func() {
		fake := &fakeClient{
			containers: []dockerclient.APIContainers{
				{ID: "first"},
				{ID: "second"},
			},
			removeErr: map[string]error{},
		}
		cleaner := Cleaner{docker: fake}

		Convey("All containers should be removed with volumes and force", func() {
			err := cleaner.RemoveAllContainers()
			So(err, ShouldBeNil)

			So(len(fake.listOpts), ShouldEqual, 1)
			So(fake.listOpts[0].All, ShouldBeTrue)

			So(len(fake.removeOpts), ShouldEqual, 2)
			So(fake.removeOpts[0].ID, ShouldEqual, "first")
			So(fake.removeOpts[0].RemoveVolumes, ShouldBeTrue)
			So(fake.removeOpts[0].Force, ShouldBeTrue)
			So(fake.removeOpts[1].ID, ShouldEqual, "second")
		})

		Convey("When one removal fails, the other containers should still be removed", func() {
			fake.removeErr["first"] = errors.New("no such container")

			err := cleaner.RemoveAllContainers()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no such container")

			So(len(fake.removeOpts), ShouldEqual, 2)
		})

		Convey("When listing fails, error should be returned", func() {
			fake.listErr = errors.New("daemon unavailable")

			err := cleaner.RemoveAllContainers()
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "daemon unavailable")
			So(len(fake.removeOpts), ShouldEqual, 0)
		})

		Convey("When there are no containers, sweep should be a no-op", func() {
			fake.containers = nil

			err := cleaner.RemoveAllContainers()
			So(err, ShouldBeNil)
			So(len(fake.removeOpts), ShouldEqual, 0)
		})
	})
}
