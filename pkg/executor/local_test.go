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
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

// TestLocal tests the execution of process on local machine.
func TestLocal(t *testing.T) {
	log.SetLevel(log.ErrorLevel)

	Convey("While using Local Shell", t, func() {
		l := NewLocal()

		Convey("When blocking infinitively sleep command is executed", func() {
			taskHandle, err := l.Execute("sleep inf")
			So(err, ShouldBeNil)
			So(taskHandle, ShouldNotBeNil)

			defer taskHandle.EraseOutput()
			defer taskHandle.Stop()

			Convey("Task should be still running", func() {
				So(taskHandle.Status(), ShouldEqual, RUNNING)
			})

			Convey("When we wait for task termination with very short timeout, timeout should exceed", func() {
				isTerminated := taskHandle.Wait(1 * time.Millisecond)

				So(isTerminated, ShouldBeFalse)
				So(taskHandle.Status(), ShouldEqual, RUNNING)
			})

			Convey("When we stop the task", func() {
				err := taskHandle.Stop()

				Convey("There should be no error and the exit status should indicate that task was killed", func() {
					So(err, ShouldBeNil)
					So(taskHandle.Status(), ShouldEqual, TERMINATED)

					exitCode, err := taskHandle.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, -15)
				})
			})
		})

		Convey("When command `echo output` is executed", func() {
			taskHandle, err := l.Execute("echo output")
			So(err, ShouldBeNil)
			So(taskHandle, ShouldNotBeNil)

			defer taskHandle.EraseOutput()
			defer taskHandle.Stop()

			Convey("When we wait for the task to terminate", func() {
				isTerminated := taskHandle.Wait(0)

				So(isTerminated, ShouldBeTrue)
				So(taskHandle.Status(), ShouldEqual, TERMINATED)

				Convey("The exit status should be 0", func() {
					exitCode, err := taskHandle.ExitCode()

					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)
				})

				Convey("And command stdout needs to match 'output'", func() {
					stdoutFile, err := taskHandle.StdoutFile()
					So(err, ShouldBeNil)
					defer stdoutFile.Close()

					data, err := ioutil.ReadAll(stdoutFile)
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, "output\n")
				})

				Convey("When we erase output, stdout & stderr files should be removed", func() {
					stdoutFile, err := taskHandle.StdoutFile()
					So(err, ShouldBeNil)

					outputDir := filepath.Dir(stdoutFile.Name())
					stdoutFile.Close()

					err = taskHandle.EraseOutput()
					So(err, ShouldBeNil)

					_, err = os.Stat(outputDir)
					So(os.IsNotExist(err), ShouldBeTrue)
				})
			})
		})

		Convey("When command which does not exist is executed, execution should fail", func() {
			taskHandle, err := l.Execute("commandThatDoesNotExists")

			So(err, ShouldNotBeNil)
			So(taskHandle, ShouldBeNil)
		})

		Convey("When we execute two tasks in the same time", func() {
			taskHandle, err := l.Execute("echo output1")
			So(err, ShouldBeNil)
			taskHandle2, err2 := l.Execute("echo output2")
			So(err2, ShouldBeNil)

			defer taskHandle.EraseOutput()
			defer taskHandle2.EraseOutput()

			Convey("When we wait for the tasks to terminate", func() {
				So(taskHandle.Wait(0), ShouldBeTrue)
				So(taskHandle2.Wait(0), ShouldBeTrue)

				Convey("The tasks should be terminated with exit code 0", func() {
					So(taskHandle.Status(), ShouldEqual, TERMINATED)
					So(taskHandle2.Status(), ShouldEqual, TERMINATED)

					exitCode, err := taskHandle.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)

					exitCode, err = taskHandle2.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)
				})

				Convey("The commands stdouts needs to match 'output1' & 'output2'", func() {
					stdoutFile, err := taskHandle.StdoutFile()
					So(err, ShouldBeNil)
					defer stdoutFile.Close()

					stdoutFile2, err := taskHandle2.StdoutFile()
					So(err, ShouldBeNil)
					defer stdoutFile2.Close()

					data, err := ioutil.ReadAll(stdoutFile)
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, "output1\n")

					data, err = ioutil.ReadAll(stdoutFile2)
					So(err, ShouldBeNil)
					So(string(data), ShouldEqual, "output2\n")
				})
			})
		})

		Convey("When command is executed with isolation decorators", func() {
			isolatedExecutor := NewLocalIsolated(prefixDecorator{})

			taskHandle, err := isolatedExecutor.Execute("output")
			So(err, ShouldBeNil)
			So(taskHandle, ShouldNotBeNil)

			defer taskHandle.EraseOutput()
			defer taskHandle.Stop()

			Convey("Decorated command should be executed", func() {
				So(taskHandle.Wait(0), ShouldBeTrue)

				exitCode, err := taskHandle.ExitCode()
				So(err, ShouldBeNil)
				So(exitCode, ShouldEqual, 0)

				stdoutFile, err := taskHandle.StdoutFile()
				So(err, ShouldBeNil)
				defer stdoutFile.Close()

				data, err := ioutil.ReadAll(stdoutFile)
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "output\n")
			})
		})
	})
}

// prefixDecorator turns the command into an echo of itself.
type prefixDecorator struct{}

func (p prefixDecorator) Decorate(command string) string {
	return "echo " + command
}
