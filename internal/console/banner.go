package console

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

const banner = `
   __ _       _                  _
  / _(_)_ __ | |_ _ __ __ _  ___| | __
 | |_| | '_ \| __| '__/ _' |/ __| |/ /
 |  _| | | | | |_| | | (_| | (__|   <
 |_| |_|_| |_|\__|_|  \__,_|\___|_|\_\
`

// Banner prints the welcome banner with the version line.
func Banner(out io.Writer, version string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Fprintln(out, green(banner))
	fmt.Fprintln(out, blue(fmt.Sprintf("Personal Finance Tracker (v%s)", version)))
}
