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
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/intelsdi-x/snapload/pkg/isolation"
)

const killTimeout = 5 * time.Second

// Local provisioning is responsible for providing the execution environment
// on local machine via exec.Command.
// It runs command as current user.
type Local struct {
	commandDecorators isolation.Decorator
}

// NewLocal returns instance of local executors without any isolators.
func NewLocal() Local {
	return NewLocalIsolated(isolation.Decorators{})
}

// NewLocalIsolated returns a Local instance with some isolators set.
func NewLocalIsolated(decorators ...isolation.Decorator) Local {
	return Local{commandDecorators: isolation.Decorators(decorators)}
}

// Name returns user-friendly name of executor.
func (l Local) Name() string {
	return "Local Executor"
}

// Execute runs the command given as input.
// Returned Task Handle is able to stop & monitor the provisioned process.
func (l Local) Execute(command string) (TaskHandle, error) {
	decoratedCommand := l.commandDecorators.Decorate(command)

	log.Debug("Starting ", decoratedCommand, " locally ")

	cmd := exec.Command("sh", "-c", decoratedCommand)

	// It is important to set additional Process Group ID for parent process and his children
	// to have ability to kill all the children processes.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	stdoutFile, stderrFile, err := createExecutorOutputFiles(command, "local")
	if err != nil {
		return nil, errors.Wrapf(err, "createExecutorOutputFiles for command %q failed", command)
	}

	log.Debug("Created temporary files ",
		"stdout path:  ", stdoutFile.Name(),
		", stderr path:  ", stderrFile.Name())

	cmd.Stdout = stdoutFile
	cmd.Stderr = stderrFile

	err = cmd.Start()
	if err != nil {
		return nil, errors.Wrapf(err, "command %q start failed", decoratedCommand)
	}

	log.Debug("Started with pid ", cmd.Process.Pid)

	// hasProcessExited channel is closed when the watcher observes process exit.
	hasProcessExited := make(chan struct{})

	taskHandle := &localTaskHandle{
		cmdHandler:       cmd,
		command:          decoratedCommand,
		stdoutFilePath:   stdoutFile.Name(),
		stderrFilePath:   stderrFile.Name(),
		hasProcessExited: hasProcessExited,
	}

	// Wait for local task in go routine.
	go func() {
		defer close(hasProcessExited)

		// Wait for task completion.
		// NOTE: Wait() returns an error. We grab the process state in any case
		// (success or failure) below, so the error object matters less in the
		// status handling for now.
		cmd.Wait()

		waitStatus := cmd.ProcessState.Sys().(syscall.WaitStatus)

		var exitCode int
		// If process exited on his own, show the exitStatus.
		if waitStatus.Exited() {
			exitCode = waitStatus.ExitStatus()
		} else {
			// Show what signal caused the termination.
			exitCode = -int(waitStatus.Signal())
		}

		log.Debug("Ended ", decoratedCommand,
			" with output in file: ", stdoutFile.Name(),
			" with err output in file: ", stderrFile.Name(),
			" with status code: ", exitCode)

		// Sync & close the output files.
		err := stdoutFile.Sync()
		if err != nil {
			log.Errorf("Cannot sync stdout file: %s", err.Error())
		}
		err = stderrFile.Sync()
		if err != nil {
			log.Errorf("Cannot sync stderr file: %s", err.Error())
		}
		stdoutFile.Close()
		stderrFile.Close()
	}()

	// Best effort potential way to check if binary is started properly.
	taskHandle.Wait(100 * time.Millisecond)

	return checkIfProcessFailedToExecute(decoratedCommand, l.Name(), taskHandle)
}

// localTaskHandle implements TaskHandle interface.
type localTaskHandle struct {
	cmdHandler     *exec.Cmd
	command        string
	stdoutFilePath string
	stderrFilePath string

	// This channel is closed immediately when process exits.
	// It is used to signal task termination.
	hasProcessExited chan struct{}
}

// isTerminated checks if channel hasProcessExited is closed. If it is closed,
// it means that wait ended and task is in terminated state.
func (taskHandle *localTaskHandle) isTerminated() bool {
	select {
	case <-taskHandle.hasProcessExited:
		// If channel is closed then task is terminated.
		return true
	default:
		return false
	}
}

func (taskHandle *localTaskHandle) getPid() int {
	return taskHandle.cmdHandler.Process.Pid
}

// Stop terminates the local task.
func (taskHandle *localTaskHandle) Stop() error {
	if taskHandle.isTerminated() {
		return nil
	}

	// We signal the entire process group.
	// The kill syscall interprets a negated PID N as the process group N belongs to.
	log.Debug("Sending SIGTERM to PID ", -taskHandle.getPid())
	err := syscall.Kill(-taskHandle.getPid(), syscall.SIGTERM)
	if err != nil {
		return errors.Wrapf(err, "sending SIGTERM to PID %d failed", -taskHandle.getPid())
	}

	if taskHandle.Wait(killTimeout) {
		return nil
	}

	// Task did not terminate gracefully, so escalate.
	log.Debug("Sending SIGKILL to PID ", -taskHandle.getPid())
	err = syscall.Kill(-taskHandle.getPid(), syscall.SIGKILL)
	if err != nil {
		return errors.Wrapf(err, "sending SIGKILL to PID %d failed", -taskHandle.getPid())
	}

	// Checking if kill was successful.
	if !taskHandle.Wait(killTimeout) {
		return errors.Errorf("cannot terminate task %q", taskHandle.command)
	}

	return nil
}

// Status returns a state of the task.
func (taskHandle *localTaskHandle) Status() TaskState {
	if !taskHandle.isTerminated() {
		return RUNNING
	}

	return TERMINATED
}

// ExitCode returns a exitCode. If task is not terminated it returns error.
func (taskHandle *localTaskHandle) ExitCode() (int, error) {
	if !taskHandle.isTerminated() {
		return -1, errors.Errorf("task %q is not terminated", taskHandle.command)
	}

	waitStatus := taskHandle.cmdHandler.ProcessState.Sys().(syscall.WaitStatus)

	// If process exited on his own, show the exitStatus.
	if waitStatus.Exited() {
		return waitStatus.ExitStatus(), nil
	}

	// Show what signal caused the termination.
	return -int(waitStatus.Signal()), nil
}

// StdoutFile returns a file handle for the task's stdout file.
func (taskHandle *localTaskHandle) StdoutFile() (*os.File, error) {
	return openFile(taskHandle.stdoutFilePath)
}

// StderrFile returns a file handle for the task's stderr file.
func (taskHandle *localTaskHandle) StderrFile() (*os.File, error) {
	return openFile(taskHandle.stderrFilePath)
}

// Wait waits for the command to finish with the given timeout time.
// It returns true if task is terminated.
func (taskHandle *localTaskHandle) Wait(timeout time.Duration) bool {
	if taskHandle.isTerminated() {
		return true
	}

	var timeoutChannel <-chan time.Time
	if timeout != 0 {
		// In case of wait with timeout set the timeout channel.
		timeoutChannel = time.After(timeout)
	}

	select {
	case <-taskHandle.hasProcessExited:
		// If channel is closed then task is terminated.
		return true
	case <-timeoutChannel:
		// If timeout time exceeded return then task did not terminate yet.
		return false
	}
}

// Clean cleans task temporary resources.
// Stdout & stderr files are closed by the watcher after process exit.
func (taskHandle *localTaskHandle) Clean() error {
	return nil
}

// EraseOutput removes task's stdout & stderr files.
func (taskHandle *localTaskHandle) EraseOutput() error {
	outputDir := filepath.Dir(taskHandle.stdoutFilePath)

	// Remove temporary directory created for stdout and stderr.
	if err := os.RemoveAll(outputDir); err != nil {
		return errors.Wrapf(err, "os.RemoveAll of directory %q failed", outputDir)
	}
	return nil
}

// Address returns address of current task.
func (taskHandle *localTaskHandle) Address() string {
	return "127.0.0.1"
}
