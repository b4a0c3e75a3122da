package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/maksimkurb/ifselect/src/internal/api"
	"github.com/maksimkurb/ifselect/src/internal/commands"
	"github.com/maksimkurb/ifselect/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (default: built-in defaults)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Network interface selector\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  select                  Select interfaces using SOCKET_IFNAME, InfiniBand, COMM_ID and fallbacks\n")
		fmt.Fprintf(os.Stderr, "  interfaces [spec]       List interfaces passing a filter spec (e.g. \"^docker,lo\")\n")
		fmt.Fprintf(os.Stderr, "  match-subnet <endpoint> List interfaces in the same subnet as an endpoint\n")
		fmt.Fprintf(os.Stderr, "  resolve <endpoint>      Resolve \"host:port\" or \"[ipv6%%zone]:port\" to a socket address\n")
		fmt.Fprintf(os.Stderr, "  is-local <ip>           Check whether an IP address belongs to this host\n")
		fmt.Fprintf(os.Stderr, "  self-check              Print and check the effective parameters\n")
		fmt.Fprintf(os.Stderr, "  serve                   Run the read-only HTTP API\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	// Command output goes to stdout, keep logs off it
	log.SetForceStdErr(true)
	if ctx.Verbose {
		log.SetVerbose(true)
	}

	api.Version = version
	api.Commit = commit
	api.Date = date

	cmds := []commands.Runner{
		commands.CreateSelectCommand(),
		commands.CreateInterfacesCommand(),
		commands.CreateMatchSubnetCommand(),
		commands.CreateResolveCommand(),
		commands.CreateIsLocalCommand(),
		commands.CreateSelfCheckCommand(),
		commands.CreateServerCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
