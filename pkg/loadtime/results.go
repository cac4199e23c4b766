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
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// FileName is the canonical name of the results file produced by the
// benchmarked container workloads.
const FileName = "load_time.csv"

// Results holds the lines of a load time results file. Rows are kept
// verbatim so that aggregation does not reformat what the workloads wrote.
type Results struct {
	Header string
	Rows   []string
}

// String returns the results in the CSV wire format, without trailing newline.
func (r Results) String() string {
	return strings.Join(append([]string{r.Header}, r.Rows...), "\n")
}

// File reads and parses the results file at given path.
func File(path string) (Results, error) {
	file, err := os.Open(path)
	if err != nil {
		return Results{}, errors.Wrapf(err, "cannot open results file %q", path)
	}
	defer file.Close()

	results, err := Parse(file)
	if err != nil {
		return Results{}, errors.Wrapf(err, "cannot parse results file %q", path)
	}
	return results, nil
}

// Parse reads results in CSV format. The first line is the header.
func Parse(reader io.Reader) (Results, error) {
	scanner := bufio.NewScanner(reader)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Results{}, errors.Wrap(err, "cannot read results")
		}
		return Results{}, errors.New("no header line found")
	}

	results := Results{Header: scanner.Text()}
	for scanner.Scan() {
		results.Rows = append(results.Rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Results{}, errors.Wrap(err, "cannot read results")
	}

	return results, nil
}

// Merge combines two result sets into one that carries a single header.
// The header of the first set wins, rows keep their order.
func Merge(first Results, second Results) Results {
	merged := Results{Header: first.Header}
	merged.Rows = append(merged.Rows, first.Rows...)
	merged.Rows = append(merged.Rows, second.Rows...)
	return merged
}

// WriteFile stores results at given path in the CSV wire format.
func WriteFile(path string, results Results) error {
	err := ioutil.WriteFile(path, []byte(results.String()+"\n"), 0644)
	if err != nil {
		return errors.Wrapf(err, "cannot write results file %q", path)
	}
	return nil
}
