package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/maksimkurb/ifselect/src/internal/config"
	"github.com/maksimkurb/ifselect/src/internal/log"
	"github.com/maksimkurb/ifselect/src/internal/networking"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	// ConfigPath is the TOML config file. Empty means built-in defaults.
	ConfigPath string
	Verbose    bool

	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
	// LookupEnv replaces os.LookupEnv for parameter lookups.
	LookupEnv func(string) (string, bool)
	// Lister replaces the netlink interface lister.
	Lister networking.InterfaceLister
	// Zones replaces the netlink zone resolver.
	Zones networking.ZoneResolver
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout != nil {
		return ctx.Stdout
	}
	return os.Stdout
}

// Engine bundles the selection components built from the configuration.
type Engine struct {
	Config   *config.Config
	Params   *config.Params
	Enum     *networking.Enumerator
	Parser   *networking.EndpointParser
	Selector *networking.InterfaceSelector

	// MaxInterfaces is general.max_interfaces, overridden by MAX_IFS.
	MaxInterfaces int
}

// loadAndValidateConfigOrFail loads configuration from file and validates it.
// An empty path yields the default configuration.
func loadAndValidateConfigOrFail(configPath string) (*config.Config, error) {
	if configPath == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err := cfg.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}

	return cfg, nil
}

// NewEngine loads the configuration and wires the enumerator, endpoint
// parser and selector.
func NewEngine(ctx *AppContext) (*Engine, error) {
	cfg, err := loadAndValidateConfigOrFail(ctx.ConfigPath)
	if err != nil {
		return nil, err
	}

	var opts []config.ParamsOption
	if ctx.LookupEnv != nil {
		opts = append(opts, config.WithLookupEnv(ctx.LookupEnv))
	}
	params := config.NewParamsFromConfig(cfg, opts...)

	hosts, err := newHostResolver(params)
	if err != nil {
		return nil, err
	}

	enum := networking.NewEnumerator(ctx.Lister, networking.WithStrictFilters(cfg.General.StrictFilters))
	parser := networking.NewEndpointParser(hosts, ctx.Zones, networking.WithStrictEndpoints(cfg.General.StrictEndpoints))

	return &Engine{
		Config:   cfg,
		Params:   params,
		Enum:     enum,
		Parser:   parser,
		Selector: networking.NewInterfaceSelector(enum, parser, params),

		MaxInterfaces: params.MaxInterfaces(cfg.General.MaxInterfaces),
	}, nil
}

// newHostResolver returns a DNS_SERVER-backed resolver when that parameter
// is set and the system resolver otherwise.
func newHostResolver(params *config.Params) (networking.HostResolver, error) {
	server, ok := params.Get(config.ParamDNSServer)
	if !ok || server == "" {
		return &networking.SystemResolver{}, nil
	}

	resolver, err := networking.NewDNSResolver(server)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.ParamDNSServer, err)
	}
	log.Debugf("Resolving host names through %s", resolver.Server())
	return resolver, nil
}

// maxOrDefault returns max when positive, otherwise the effective limit.
func (e *Engine) maxOrDefault(max int) int {
	if max > 0 {
		return max
	}
	return e.MaxInterfaces
}
