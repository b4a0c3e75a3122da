package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/ifselect/src/internal/log"
)

func CreateResolveCommand() *ResolveCommand {
	return &ResolveCommand{
		fs: flag.NewFlagSet("resolve", flag.ContinueOnError),
	}
}

// ResolveCommand parses an endpoint string and prints the socket address.
type ResolveCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	format   string
	endpoint string
}

func (c *ResolveCommand) Name() string {
	return c.fs.Name()
}

func (c *ResolveCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	c.fs.StringVar(&c.format, "format", "{{addr}}", "Output template, placeholders: {{addr}} {{host}} {{port}} {{family}}")

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return fmt.Errorf("usage: resolve [-format T] <endpoint>")
	}
	c.endpoint = c.fs.Arg(0)

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

func (c *ResolveCommand) Run() error {
	addr, err := c.engine.Parser.Parse(context.Background(), c.endpoint)
	if err != nil {
		return err
	}
	log.Debugf("%s -> %s", c.endpoint, addr.HostPort())
	return renderAddress(c.ctx.stdout(), c.format, addr)
}
