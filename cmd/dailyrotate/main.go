// dailyrotate copies its standard input into a log file rotated by
// calendar period and size, in the manner of piped logging:
//
//	myserver 2>&1 | dailyrotate --file /var/log/myserver.log --keep-period 7
//
// Settings can come from a YAML or JSON file given with --config; flags
// override the file. On Unix, SIGHUP forces a rotation.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// Build information, set with -ldflags, e.g.
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := createApp().Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "dailyrotate: %v\n", err)
		return 1
	}
	return 0
}

func createApp() *cli.Command {
	return &cli.Command{
		Name:      "dailyrotate",
		Usage:     "write standard input to a rotating log file",
		UsageText: "dailyrotate [options] < input",
		Version:   fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "load settings from a YAML or JSON `FILE`",
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "live log `PATH`",
			},
			&cli.StringFlag{
				Name:  "date-pattern",
				Usage: "strftime suffix of backups, empty disables time rotation",
			},
			&cli.StringFlag{
				Name:  "max-size",
				Usage: "rotate when the file reaches `SIZE`, e.g. 10MB, 0 disables",
			},
			&cli.IntFlag{
				Name:  "keep-period",
				Usage: "periods of backups to keep, 0 keeps all",
			},
			&cli.BoolFlag{
				Name:  "append",
				Usage: "append to an existing file on start",
			},
			&cli.StringFlag{
				Name:  "first-day-of-week",
				Usage: "first day of weekly periods",
			},
			&cli.StringFlag{
				Name:  "location",
				Usage: "time zone of period boundaries",
			},
			&cli.StringFlag{
				Name:  "error-log",
				Usage: "write diagnostics to `PATH` instead of stderr",
			},
		},
		Action: pipeAction,
	}
}
