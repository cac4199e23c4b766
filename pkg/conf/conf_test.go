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

package conf

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

const testAppName = "testAppName"

var customFlag = NewStringFlag("custom_arg", "help", "default")

func clearEnv() {
	// Clear all environment variables in context of that test.
	logLevelFlag.clear()
	customFlag.clear()
}

func TestFlag(t *testing.T) {
	Convey("While using Flag struct, it should construct proper snapload environment var name", t, func() {
		So(NewStringFlag("test_name", "", "").envName(), ShouldEqual, "SNAPLOAD_TEST_NAME")
	})
}

func TestConf(t *testing.T) {
	Convey("While using Conf pkg", t, func() {
		clearEnv()
		defer clearEnv()

		SetAppName(testAppName)

		Convey("Name should match to specified one", func() {
			So(AppName(), ShouldEqual, testAppName)
		})

		Convey("Help can be set from file", func() {
			helpFile, err := ioutil.TempFile("", "help")
			So(err, ShouldBeNil)
			defer os.Remove(helpFile.Name())

			_, err = helpFile.WriteString("Custom help message.")
			So(err, ShouldBeNil)
			So(helpFile.Close(), ShouldBeNil)

			SetHelpPath(helpFile.Name())
			So(app.Help, ShouldEqual, "Custom help message.")
		})

		Convey("Log level can be fetched", func() {
			So(LogLevel(), ShouldEqual, logrus.ErrorLevel)
		})

		Convey("Log level can be fetched from env", func() {
			// Default one.
			So(LogLevel(), ShouldEqual, logrus.ErrorLevel)

			os.Setenv(logLevelFlag.envName(), "debug")

			err := ParseEnv()
			So(err, ShouldBeNil)

			// Should be from environment.
			So(LogLevel(), ShouldEqual, logrus.DebugLevel)
		})

		Convey("When some custom argument is defined", func() {
			Convey("Without parse it should be default", func() {
				So(customFlag.Value(), ShouldEqual, "default")
			})

			Convey("When we not defined any environment variable we should have default value after parse", func() {
				err := ParseEnv()
				So(err, ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, customFlag.defaultValue)
			})

			Convey("When we define custom environment variable we should have custom value after parse", func() {
				customValue := "customContent"
				os.Setenv(customFlag.envName(), customValue)

				err := ParseEnv()
				So(err, ShouldBeNil)
				So(customFlag.Value(), ShouldEqual, customValue)
			})
		})

		Convey("When configuration is dumped", func() {
			err := ParseEnv()
			So(err, ShouldBeNil)

			dump := DumpConfig()
			So(dump, ShouldContainSubstring, "set -o allexport")
			So(dump, ShouldContainSubstring, "SNAPLOAD_CUSTOM_ARG=default")

			Convey("Values can be overridden by a flag map", func() {
				dump := DumpConfigMap(map[string]string{"custom_arg": "overridden"})
				So(dump, ShouldContainSubstring, "SNAPLOAD_CUSTOM_ARG=overridden")
			})

			Convey("Flags map should contain current values", func() {
				flags := GetFlags()
				So(flags["custom_arg"], ShouldEqual, "default")
			})
		})
	})
}
