// Command inkwell is a CLI client for the Inkwell blog platform.
package main

import "github.com/inkwell-cms/inkwell-go/internal/cli"

func main() {
	cli.Execute()
}
