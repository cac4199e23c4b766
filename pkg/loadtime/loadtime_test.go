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

package loadtime

import (
	"io/ioutil"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResults(t *testing.T) {
	Convey("While parsing load time results", t, func() {
		Convey("Header and rows should be read from valid input", func() {
			results, err := Parse(strings.NewReader("snapshot,load_time_ms\na.snapshot,1250.5\nb.snapshot,980.25"))
			So(err, ShouldBeNil)
			So(results.Header, ShouldEqual, "snapshot,load_time_ms")
			So(results.Rows, ShouldResemble, []string{"a.snapshot,1250.5", "b.snapshot,980.25"})
		})

		Convey("Input with header only should give no rows", func() {
			results, err := Parse(strings.NewReader("snapshot,load_time_ms\n"))
			So(err, ShouldBeNil)
			So(results.Header, ShouldEqual, "snapshot,load_time_ms")
			So(len(results.Rows), ShouldEqual, 0)
		})

		Convey("Empty input should give an error", func() {
			_, err := Parse(strings.NewReader(""))
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "no header line found")
		})
	})

	Convey("While reading results from a file", t, func() {
		Convey("Testdata results should be read correctly", func() {
			results, err := File(path.Join("testdata", FileName))
			So(err, ShouldBeNil)
			So(results.Header, ShouldEqual, "snapshot,load_time_ms,status")
			So(len(results.Rows), ShouldEqual, 2)
		})

		Convey("Missing file should preserve the not exist cause", func() {
			_, err := File(path.Join("testdata", "no_such_file.csv"))
			So(err, ShouldNotBeNil)
			So(os.IsNotExist(errors.Cause(err)), ShouldBeTrue)
		})
	})

	Convey("While merging results", t, func() {
		first := Results{Header: "snapshot,load_time_ms", Rows: []string{"a.snapshot,1"}}
		second := Results{Header: "snapshot,load_time_ms", Rows: []string{"b.snapshot,2", "c.snapshot,3"}}

		merged := Merge(first, second)
		So(merged.Header, ShouldEqual, "snapshot,load_time_ms")
		So(merged.Rows, ShouldResemble, []string{"a.snapshot,1", "b.snapshot,2", "c.snapshot,3"})
	})

	Convey("While writing results to a file", t, func() {
		tempDir, err := ioutil.TempDir(os.TempDir(), "loadtime")
		So(err, ShouldBeNil)
		defer os.RemoveAll(tempDir)

		filePath := path.Join(tempDir, FileName)
		results := Results{Header: "snapshot,load_time_ms", Rows: []string{"a.snapshot,1250.5"}}
		So(WriteFile(filePath, results), ShouldBeNil)

		content, err := ioutil.ReadFile(filePath)
		So(err, ShouldBeNil)
		So(string(content), ShouldEqual, "snapshot,load_time_ms\na.snapshot,1250.5\n")
	})
}

func TestSummarize(t *testing.T) {
	results := Results{
		Header: "snapshot,load_time_ms,status",
		Rows:   []string{"a.snapshot,1250.5,ok", "b.snapshot,980.25,ok"},
	}

	Convey("While summarizing results", t, func() {
		Convey("Only fully numeric columns should be summarized", func() {
			summaries, err := Summarize(results)
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, 1)

			summary := summaries[0]
			So(summary.Name, ShouldEqual, "load_time_ms")
			So(summary.Count, ShouldEqual, 2)
			So(summary.Min, ShouldAlmostEqual, 980.25)
			So(summary.Max, ShouldAlmostEqual, 1250.5)
			So(summary.Mean, ShouldAlmostEqual, 1115.375)
			So(summary.StdDev, ShouldAlmostEqual, 135.125)
		})

		Convey("Header only results should give no summaries", func() {
			summaries, err := Summarize(Results{Header: "snapshot,load_time_ms"})
			So(err, ShouldBeNil)
			So(len(summaries), ShouldEqual, 0)
		})

		Convey("Summary map should hold flattened statistics", func() {
			summaries, err := Summarize(results)
			So(err, ShouldBeNil)

			metadata := SummaryMap(summaries)
			So(metadata["load_time_ms_count"], ShouldEqual, "2")
			So(metadata["load_time_ms_min"], ShouldEqual, "980.250000")
			So(metadata["load_time_ms_max"], ShouldEqual, "1250.500000")
			So(metadata["load_time_ms_mean"], ShouldEqual, "1115.375000")
			So(metadata["load_time_ms_stddev"], ShouldEqual, "135.125000")
		})
	})
}
