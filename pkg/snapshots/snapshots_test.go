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

package snapshots

import (
	"io/ioutil"
	"os"
	"path"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestValidateDir(t *testing.T) {
	Convey("While validating snapshot directory", t, func() {
		Convey("Existing directory should pass validation", func() {
			tmpDir, err := ioutil.TempDir("", "snapshots")
			So(err, ShouldBeNil)
			defer os.RemoveAll(tmpDir)

			So(ValidateDir(tmpDir), ShouldBeNil)
		})

		Convey("Non-existent directory should fail validation", func() {
			err := ValidateDir("/non/existent/directory")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "does not exist")
		})

		Convey("Regular file should fail validation", func() {
			tmpFile, err := ioutil.TempFile("", "snapshots")
			So(err, ShouldBeNil)
			defer os.Remove(tmpFile.Name())
			So(tmpFile.Close(), ShouldBeNil)

			err = ValidateDir(tmpFile.Name())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "is not a directory")
		})
	})
}

func TestDiscover(t *testing.T) {
	Convey("While discovering snapshots", t, func() {
		tmpDir, err := ioutil.TempDir("", "snapshots")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tmpDir)

		Convey("Empty directory should yield no snapshots and no error", func() {
			snapshots, err := Discover(tmpDir)
			So(err, ShouldBeNil)
			So(snapshots, ShouldBeEmpty)
		})

		Convey("Directory with snapshots and other files", func() {
			for _, name := range []string{"b.snapshot", "a.snapshot", "notes.txt"} {
				err := ioutil.WriteFile(path.Join(tmpDir, name), []byte{}, 0644)
				So(err, ShouldBeNil)
			}

			snapshots, err := Discover(tmpDir)
			So(err, ShouldBeNil)

			Convey("Only snapshot files should be discovered, in lexicographical order", func() {
				So(len(snapshots), ShouldEqual, 2)
				So(snapshots[0].Name, ShouldEqual, "a.snapshot")
				So(snapshots[1].Name, ShouldEqual, "b.snapshot")
			})

			Convey("Paths should be absolute", func() {
				So(path.IsAbs(snapshots[0].Path), ShouldBeTrue)
				So(snapshots[0].Path, ShouldEndWith, "a.snapshot")
			})
		})
	})
}
