package commands

import (
	"flag"
	"fmt"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

func CreateInterfacesCommand() *InterfacesCommand {
	return &InterfacesCommand{
		fs: flag.NewFlagSet("interfaces", flag.ContinueOnError),
	}
}

// InterfacesCommand enumerates interfaces passing a filter spec.
type InterfacesCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	family string
	max    int
	format string
	spec   string
}

func (g *InterfacesCommand) Name() string {
	return g.fs.Name()
}

func (g *InterfacesCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	g.fs.StringVar(&g.family, "family", "", "Address family: AF_INET, AF_INET6 or empty for both")
	g.fs.IntVar(&g.max, "max", 0, "Maximum number of interfaces (default: general.max_interfaces)")
	g.fs.StringVar(&g.format, "format", defaultInterfaceFormat, "Output template, placeholders: {{index}} {{name}} {{addr}} {{host}} {{port}} {{family}} {{up}}")

	if err := g.fs.Parse(args); err != nil {
		return err
	}
	if g.fs.NArg() > 1 {
		return fmt.Errorf("expected at most one filter spec, got %d arguments", g.fs.NArg())
	}
	g.spec = g.fs.Arg(0)

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	g.engine = engine
	return nil
}

func (g *InterfacesCommand) Run() error {
	found, err := g.engine.Enum.FindInterfaces(g.spec, networking.ParseFamily(g.family), g.engine.maxOrDefault(g.max))
	if err != nil {
		return fmt.Errorf("failed to get interfaces: %w", err)
	}
	return renderInterfaces(g.ctx.stdout(), g.format, found)
}
