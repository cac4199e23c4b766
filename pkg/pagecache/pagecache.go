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

package pagecache

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/intelsdi-x/snapload/pkg/conf"
	"github.com/intelsdi-x/snapload/pkg/executor"
)

const name = "Page Cache Dropper"

// DropCachesLevelFlag sets the value written to /proc/sys/vm/drop_caches:
// 1 frees the page cache, 2 frees dentries and inodes, 3 frees both.
var DropCachesLevelFlag = conf.NewIntFlag(
	"drop_caches_level",
	"Level written to /proc/sys/vm/drop_caches before each benchmark run (1: page cache, 2: dentries and inodes, 3: both).",
	3,
)

// Dropper flushes dirty pages and evicts the kernel page cache so that every
// benchmark run starts cold. Writing to /proc/sys/vm/drop_caches requires
// root, so the executor needs to be appropriately privileged.
type Dropper struct {
	exec  executor.Executor
	level int
}

// NewDropper is a constructor for Dropper.
func NewDropper(exec executor.Executor, level int) Dropper {
	return Dropper{
		exec:  exec,
		level: level,
	}
}

func (d Dropper) buildCommand() string {
	return fmt.Sprintf("sync && echo %d > /proc/sys/vm/drop_caches", d.level)
}

// Drop synchronizes filesystems and drops the page cache.
// It blocks until the drop is finished.
func (d Dropper) Drop() error {
	taskHandle, err := d.exec.Execute(d.buildCommand())
	if err != nil {
		return errors.Wrapf(err, "%s execution failed", name)
	}

	taskHandle.Wait(0)

	exitCode, err := taskHandle.ExitCode()
	if err != nil {
		return errors.Wrapf(err, "cannot obtain %s exit code", name)
	}
	if exitCode != 0 {
		executor.LogUnsucessfulExecution(d.buildCommand(), d.exec.Name(), taskHandle)
		return errors.Errorf("%s failed with exit code %d", name, exitCode)
	}

	executor.LogSuccessfulExecution(d.buildCommand(), d.exec.Name(), taskHandle)

	return taskHandle.Clean()
}

// Name returns human readable name of the dropper.
func (d Dropper) Name() string {
	return name
}
