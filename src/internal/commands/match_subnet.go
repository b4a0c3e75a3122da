package commands

import (
	"context"
	"flag"
	"fmt"
)

func CreateMatchSubnetCommand() *MatchSubnetCommand {
	return &MatchSubnetCommand{
		fs: flag.NewFlagSet("match-subnet", flag.ContinueOnError),
	}
}

// MatchSubnetCommand lists interfaces sharing a subnet with an endpoint.
type MatchSubnetCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	max      int
	format   string
	endpoint string
}

func (c *MatchSubnetCommand) Name() string {
	return c.fs.Name()
}

func (c *MatchSubnetCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	c.fs.IntVar(&c.max, "max", 0, "Maximum number of interfaces (default: general.max_interfaces)")
	c.fs.StringVar(&c.format, "format", defaultInterfaceFormat, "Output template, placeholders: {{index}} {{name}} {{addr}} {{host}} {{port}} {{family}} {{up}}")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return fmt.Errorf("usage: match-subnet [-max N] [-format T] <endpoint>")
	}
	c.endpoint = c.fs.Arg(0)

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

func (c *MatchSubnetCommand) Run() error {
	remote, err := c.engine.Parser.Parse(context.Background(), c.endpoint)
	if err != nil {
		return err
	}

	found, err := c.engine.Enum.FindInterfaceMatchSubnet(remote, c.engine.maxOrDefault(c.max))
	if err != nil {
		return err
	}
	return renderInterfaces(c.ctx.stdout(), c.format, found)
}
