// SPDX-License-Identifier: MPL-2.0

// Command scsup updates the version of SCS mod archives.
package main

import cmd "github.com/scstools/scsup/cmd/scsup"

func main() {
	cmd.Execute()
}
