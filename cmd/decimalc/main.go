// Command decimalc infers and evaluates fixed point decimal arithmetic.
package main

import (
	"os"

	"github.com/golang/glog"

	"github.com/calebcase/decarith/cmd/decimalc/cli"
)

func main() {
	defer glog.Flush()

	if err := cli.Main.Execute(); err != nil {
		glog.Flush()
		os.Exit(1)
	}
}
