package commands

import (
	"flag"
	"fmt"
)

func CreateIsLocalCommand() *IsLocalCommand {
	return &IsLocalCommand{
		fs: flag.NewFlagSet("is-local", flag.ContinueOnError),
	}
}

// IsLocalCommand reports whether an IP address belongs to this host.
type IsLocalCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	ip string
}

func (c *IsLocalCommand) Name() string {
	return c.fs.Name()
}

func (c *IsLocalCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() != 1 {
		return fmt.Errorf("usage: is-local <ip>")
	}
	c.ip = c.fs.Arg(0)

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

func (c *IsLocalCommand) Run() error {
	local, err := c.engine.Enum.IsLocalAddress(c.ip)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.ctx.stdout(), local)
	return err
}
