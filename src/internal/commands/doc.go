// Package commands implements the ifselect subcommands.
//
// Each command implements the Runner interface:
//   - Init(): parse arguments, load configuration and wire the engine
//   - Run(): execute and print to AppContext.Stdout
//   - Name(): return command name for routing
//
// # Available Commands
//
//   - select: run the selection cascade
//   - interfaces: enumerate interfaces passing a filter spec
//   - match-subnet: list interfaces sharing a subnet with an endpoint
//   - resolve: parse an endpoint into a socket address
//   - is-local: tell whether an IP address belongs to this host
//   - self-check: print and check the effective parameters
//   - serve: run the read-only HTTP API
//
// Interface listings accept a -format template rendered with fasttemplate:
//
//	ifselect interfaces -format '{{name}} {{host}}' '^docker,lo'
package commands
