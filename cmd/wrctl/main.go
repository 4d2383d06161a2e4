// Command wrctl is the operator CLI for wrd: version and status
// against its control socket, the way kr.go talks to krd, plus
// globals, which reads a globals snapshot file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"golang.org/x/term"

	"wayl.io/wrd/common/persist"
	"wayl.io/wrd/common/util"
	"wayl.io/wrd/common/version"
	"wayl.io/wrd/daemon/client"
)

var useColor = term.IsTerminal(int(os.Stdout.Fd()))

func colorize(f func(string) string, s string) string {
	if !useColor {
		return s
	}
	return f(s)
}

func versionCommand(c *cli.Context) error {
	v, err := client.RequestVersion(c.GlobalString("socket"))
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(util.Red, err.Error()))
		return err
	}
	current := version.CURRENT_VERSION
	if v.Compare(current) == 0 {
		fmt.Println(colorize(util.Green, v.String()))
	} else {
		fmt.Printf("%s (wrctl is %s)\n", colorize(util.Yellow, v.String()), current.String())
	}
	return nil
}

func statusCommand(c *cli.Context) error {
	resp, err := client.Ping(c.GlobalString("socket"))
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(util.Red, err.Error()))
		return err
	}
	fmt.Println(colorize(util.Cyan, resp))
	return nil
}

func globalsCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		err := fmt.Errorf("usage: wrctl globals <snapshot-path>")
		fmt.Fprintln(os.Stderr, colorize(util.Red, err.Error()))
		return err
	}
	snapshot, err := persist.ReadGlobalsSnapshot(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, colorize(util.Red, err.Error()))
		return err
	}
	for _, g := range snapshot {
		fmt.Printf("%d: %s v%d\n", g.Name, g.Interface, g.Version)
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "wrctl"
	app.Usage = "communicate with wrd, the Wayland session-relay daemon"
	app.Version = version.CURRENT_VERSION.String()
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "socket, s",
			Usage: "Path to wrd's control socket",
			Value: "/run/wrd/control.sock",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "version",
			Usage:  "Print the running daemon's version",
			Action: versionCommand,
		},
		{
			Name:   "status",
			Usage:  "Print the daemon's liveness and active session count",
			Action: statusCommand,
		},
		{
			Name:      "globals",
			Usage:     "Print the globals snapshot wrd wrote on startup",
			ArgsUsage: "<snapshot-path>",
			Action:    globalsCommand,
		},
	}
	app.Run(os.Args)
}
