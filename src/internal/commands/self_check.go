package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/maksimkurb/ifselect/src/internal/config"
	"github.com/maksimkurb/ifselect/src/internal/log"
	"github.com/maksimkurb/ifselect/src/internal/networking"
)

func CreateSelfCheckCommand() *SelfCheckCommand {
	return &SelfCheckCommand{
		fs: flag.NewFlagSet("self-check", flag.ContinueOnError),
	}
}

// SelfCheckCommand prints the effective parameters and checks each of them
// against the host.
type SelfCheckCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine
}

func (g *SelfCheckCommand) Name() string {
	return g.fs.Name()
}

func (g *SelfCheckCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	g.engine = engine
	return nil
}

func (g *SelfCheckCommand) Run() error {
	out := g.ctx.stdout()
	failed := 0
	check := func(ok bool, format string, args ...interface{}) {
		status := "ok"
		if !ok {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(out, "[%s] %s\n", status, fmt.Sprintf(format, args...))
	}

	if path := g.engine.Config.GetConfigPath(); path != "" {
		fmt.Fprintf(out, "config: %s\n", path)
	} else {
		fmt.Fprintln(out, "config: built-in defaults")
	}
	fmt.Fprintf(out, "prefixes: %v\n", g.engine.Params.Prefixes())
	g.printParams(out)

	records, err := g.engine.Enum.FindInterfaces("", networking.FamilyAny, networking.MaxFilterEntries)
	check(err == nil, "interface table readable (%d interface(s))", len(records))
	if err != nil {
		log.Errorf("Failed to read interface table: %v", err)
	}

	family, _ := g.engine.Params.Get(networking.ParamSocketFamily)
	if ifname, ok := g.engine.Params.Get(networking.ParamSocketIfname); ok && len(ifname) > 1 {
		found, err := g.engine.Enum.FindInterfaces(ifname, networking.ParseFamily(family), networking.MaxFilterEntries)
		check(err == nil && len(found) > 0, "%s %q matches %v", networking.ParamSocketIfname, ifname, found.Names())
	}

	if commID, ok := g.engine.Params.Get(networking.ParamCommID); ok && len(commID) > 1 {
		remote, err := g.engine.Parser.Parse(context.Background(), commID)
		check(err == nil, "%s %q resolves to %s", networking.ParamCommID, commID, remote)
		if err == nil {
			found, err := g.engine.Enum.FindInterfaceMatchSubnet(remote, networking.MaxFilterEntries)
			check(err == nil && len(found) > 0, "%s shares a subnet with %v", networking.ParamCommID, found.Names())
		}
	}

	sel, err := g.engine.Selector.Select(context.Background(), g.engine.MaxInterfaces)
	check(err == nil && len(sel.Interfaces) > 0, "selection at step %s: %v", sel.Step, sel.Interfaces.Names())

	if failed > 0 {
		return fmt.Errorf("self-check failed: %d check(s) did not pass", failed)
	}
	return nil
}

func (g *SelfCheckCommand) printParams(out io.Writer) {
	for _, name := range config.HashedParams {
		if v, ok := g.engine.Params.Get(name); ok {
			fmt.Fprintf(out, "  %s=%s\n", name, v)
		} else {
			fmt.Fprintf(out, "  %s (unset)\n", name)
		}
	}
}
