// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/docextract/devcmd/cmd/devcmd"

func main() {
	cmd.Execute()
}
