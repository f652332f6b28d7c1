// mtplates looks up Montana counties and license plate prefixes by city.
package main

import (
	"os"

	"github.com/mtplates/mtplates/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
