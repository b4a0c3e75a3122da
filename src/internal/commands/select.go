package commands

import (
	"context"
	"flag"
	"fmt"

	"github.com/maksimkurb/ifselect/src/internal/log"
)

func CreateSelectCommand() *SelectCommand {
	return &SelectCommand{
		fs: flag.NewFlagSet("select", flag.ContinueOnError),
	}
}

// SelectCommand runs the selection cascade and prints the chosen interfaces.
type SelectCommand struct {
	fs     *flag.FlagSet
	ctx    *AppContext
	engine *Engine

	max      int
	format   string
	showStep bool
}

func (c *SelectCommand) Name() string {
	return c.fs.Name()
}

func (c *SelectCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	c.fs.IntVar(&c.max, "max", 0, "Maximum number of interfaces (default: general.max_interfaces)")
	c.fs.StringVar(&c.format, "format", defaultInterfaceFormat, "Output template, placeholders: {{index}} {{name}} {{addr}} {{host}} {{port}} {{family}} {{up}}")
	c.fs.BoolVar(&c.showStep, "step", false, "Print the cascade step that produced the result")

	if err := c.fs.Parse(args); err != nil {
		return err
	}

	engine, err := NewEngine(ctx)
	if err != nil {
		return err
	}
	c.engine = engine
	return nil
}

func (c *SelectCommand) Run() error {
	sel, err := c.engine.Selector.Select(context.Background(), c.engine.maxOrDefault(c.max))
	if err != nil {
		return fmt.Errorf("failed to select interfaces: %w", err)
	}

	if len(sel.Interfaces) == 0 {
		log.Warnf("No usable interface found")
	} else {
		log.Infof("Selected %d interface(s) at step %q", len(sel.Interfaces), sel.Step)
	}

	out := c.ctx.stdout()
	if c.showStep {
		if _, err := fmt.Fprintf(out, "# step: %s\n", sel.Step); err != nil {
			return err
		}
	}
	return renderInterfaces(out, c.format, sel.Interfaces)
}
