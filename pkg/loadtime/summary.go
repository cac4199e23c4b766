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
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/intelsdi-x/snapload/pkg/visualization"
)

// ColumnSummary holds basic statistics of one numeric column of the
// aggregated results.
type ColumnSummary struct {
	Name   string
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
}

// Summarize computes per column statistics for the columns of results
// which hold numeric values in every row. Columns with non numeric cells
// are skipped. Empty results yield no summaries.
func Summarize(results Results) ([]ColumnSummary, error) {
	reader := csv.NewReader(strings.NewReader(results.String()))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse results as CSV")
	}
	if len(records) <= 1 {
		return nil, nil
	}

	header := records[0]
	values := map[int][]float64{}
	numeric := map[int]bool{}
	for column := range header {
		numeric[column] = true
	}

	for _, record := range records[1:] {
		for column, cell := range record {
			if column >= len(header) {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				numeric[column] = false
				continue
			}
			values[column] = append(values[column], value)
		}
	}

	summaries := []ColumnSummary{}
	for column, name := range header {
		if !numeric[column] || len(values[column]) == 0 {
			continue
		}

		summary := ColumnSummary{Name: name, Count: len(values[column])}
		if summary.Min, err = stats.Min(values[column]); err != nil {
			return nil, errors.Wrapf(err, "cannot summarize column %q", name)
		}
		if summary.Max, err = stats.Max(values[column]); err != nil {
			return nil, errors.Wrapf(err, "cannot summarize column %q", name)
		}
		if summary.Mean, err = stats.Mean(values[column]); err != nil {
			return nil, errors.Wrapf(err, "cannot summarize column %q", name)
		}
		if summary.StdDev, err = stats.StandardDeviation(values[column]); err != nil {
			return nil, errors.Wrapf(err, "cannot summarize column %q", name)
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// Draw prints summaries as a table on standard output, preceded by the
// experiment metadata.
func Draw(summaries []ColumnSummary, experimentID string) {
	fmt.Println(visualization.NewExperimentMetadata(experimentID).String())

	data := [][]string{}
	for _, summary := range summaries {
		data = append(data, []string{
			summary.Name,
			strconv.Itoa(summary.Count),
			fmt.Sprintf("%f", summary.Min),
			fmt.Sprintf("%f", summary.Max),
			fmt.Sprintf("%f", summary.Mean),
			fmt.Sprintf("%f", summary.StdDev),
		})
	}

	table := visualization.NewTable([]string{"column", "count", "min", "max", "mean", "stddev"}, data)
	table.Draw()
}

// SummaryMap flattens summaries into a map suitable for metadata storage.
func SummaryMap(summaries []ColumnSummary) map[string]string {
	metadata := map[string]string{}
	for _, summary := range summaries {
		prefix := strings.Replace(strings.ToLower(summary.Name), " ", "_", -1)
		metadata[prefix+"_count"] = strconv.Itoa(summary.Count)
		metadata[prefix+"_min"] = fmt.Sprintf("%f", summary.Min)
		metadata[prefix+"_max"] = fmt.Sprintf("%f", summary.Max)
		metadata[prefix+"_mean"] = fmt.Sprintf("%f", summary.Mean)
		metadata[prefix+"_stddev"] = fmt.Sprintf("%f", summary.StdDev)
	}
	return metadata
}
