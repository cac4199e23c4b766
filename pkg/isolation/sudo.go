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

package isolation

import "fmt"

// Sudo decorator runs the command as root through sudo.
// The whole command is wrapped in a shell so that redirections and
// compound commands keep their elevated privileges.
type Sudo struct{}

// Decorate implements Decorator interface.
func (s Sudo) Decorate(command string) string {
	return fmt.Sprintf("sudo sh -c %q", command)
}
