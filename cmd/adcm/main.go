// Command adcm computes the deployment order of analytical datastore
// views from their SQL definitions.
package main

import (
	"os"

	"github.com/thomascjohnson/analytical-datastore-change-management/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
