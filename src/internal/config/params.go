package config

import (
	"bufio"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/maksimkurb/ifselect/src/internal/log"
	"github.com/maksimkurb/ifselect/src/internal/utils"
)

const (
	// ParamDNSServer selects a DNS server for hostname resolution.
	ParamDNSServer = "DNS_SERVER"
	// ParamConfFile names an env file loaded before the system one.
	ParamConfFile = "CONF_FILE"
	// ParamMaxInterfaces overrides general.max_interfaces.
	ParamMaxInterfaces = "MAX_IFS"

	// MaxInterfacesLimit bounds general.max_interfaces and MAX_IFS.
	MaxInterfacesLimit = 64

	DefaultUserEnvFile   = "~/.ifselect.conf"
	DefaultSystemEnvFile = "/etc/ifselect.conf"
)

// Params is the parameter store. A parameter K is looked up as <prefix>K
// for every prefix in order, first in the process environment and then in
// the values read from env files. The config file's [params] table is the
// last resort.
//
// Params is safe for concurrent use.
type Params struct {
	prefixes  []string
	envFiles  []string
	table     map[string]string
	lookupEnv func(string) (string, bool)

	loadOnce sync.Once
	fileVals map[string]string

	ints sync.Map // name -> *intSlot
}

type intSlot struct {
	once  sync.Once
	value int64
}

// ParamsOption configures a Params.
type ParamsOption func(*Params)

// WithEnvPrefixes replaces DefaultEnvPrefixes.
func WithEnvPrefixes(prefixes ...string) ParamsOption {
	return func(p *Params) {
		p.prefixes = append([]string(nil), prefixes...)
	}
}

// WithEnvFiles replaces the default env file list.
func WithEnvFiles(files ...string) ParamsOption {
	return func(p *Params) {
		p.envFiles = append([]string(nil), files...)
	}
}

// WithTable sets the fallback values, keyed by bare parameter name.
func WithTable(table map[string]string) ParamsOption {
	return func(p *Params) {
		p.table = table
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) ParamsOption {
	return func(p *Params) {
		p.lookupEnv = lookup
	}
}

// NewParams creates a parameter store. Env files are read on first use.
func NewParams(opts ...ParamsOption) *Params {
	p := &Params{
		prefixes:  append([]string(nil), DefaultEnvPrefixes...),
		envFiles:  []string{DefaultUserEnvFile, DefaultSystemEnvFile},
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewParamsFromConfig creates a parameter store from the general section
// and the [params] table of cfg.
func NewParamsFromConfig(cfg *Config, opts ...ParamsOption) *Params {
	var base []ParamsOption
	if cfg != nil {
		if cfg.General != nil && len(cfg.General.EnvPrefixes) > 0 {
			base = append(base, WithEnvPrefixes(cfg.General.EnvPrefixes...))
		}
		if cfg.General != nil && len(cfg.General.EnvFiles) > 0 {
			files := make([]string, len(cfg.General.EnvFiles))
			for i, f := range cfg.General.EnvFiles {
				if strings.HasPrefix(f, "~") || cfg.GetConfigDir() == "" {
					files[i] = f
				} else {
					files[i] = utils.GetAbsolutePath(f, cfg.GetConfigDir())
				}
			}
			base = append(base, WithEnvFiles(files...))
		}
		base = append(base, WithTable(cfg.Params))
	}
	return NewParams(append(base, opts...)...)
}

// Prefixes returns the environment prefixes in lookup order.
func (p *Params) Prefixes() []string {
	return append([]string(nil), p.prefixes...)
}

// Get returns the value of parameter name and whether it is set at all.
// An empty value counts as set.
func (p *Params) Get(name string) (string, bool) {
	p.loadOnce.Do(p.loadEnvFiles)

	for _, prefix := range p.prefixes {
		key := prefix + name
		if v, ok := p.lookupEnv(key); ok {
			return v, true
		}
		if v, ok := p.fileVals[key]; ok {
			return v, true
		}
	}
	if v, ok := p.table[name]; ok {
		return v, true
	}
	return "", false
}

// Int64 returns parameter name parsed as an integer (decimal, 0x hex or
// 0 octal). Unset or unparsable values yield def. The value is computed once
// per name; later calls return the same result even if the environment
// changes.
func (p *Params) Int64(name string, def int64) int64 {
	v, _ := p.ints.LoadOrStore(name, &intSlot{})
	slot := v.(*intSlot)
	slot.once.Do(func() {
		slot.value = def
		raw, ok := p.Get(name)
		if !ok || raw == "" {
			return
		}
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 0, 64)
		if err != nil {
			log.Warnf("Invalid value %s for %s, using default %d", raw, name, def)
			return
		}
		log.Infof("%s set by environment to %d", name, n)
		slot.value = n
	})
	return slot.value
}

// MaxInterfaces returns MAX_IFS when it is set to a value in
// 1..MaxInterfacesLimit, otherwise def.
func (p *Params) MaxInterfaces(def int) int {
	n := p.Int64(ParamMaxInterfaces, int64(def))
	if n < 1 || n > MaxInterfacesLimit {
		log.Warnf("%s=%d outside 1..%d, using %d", ParamMaxInterfaces, n, MaxInterfacesLimit, def)
		return def
	}
	return int(n)
}

// Snapshot returns the current values of the given parameters. Unset
// parameters are omitted.
func (p *Params) Snapshot(names ...string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := p.Get(name); ok {
			out[name] = v
		}
	}
	return out
}

func (p *Params) loadEnvFiles() {
	p.fileVals = make(map[string]string)

	files := append([]string(nil), p.envFiles...)
	for _, prefix := range p.prefixes {
		if custom, ok := p.lookupEnv(prefix + ParamConfFile); ok && custom != "" {
			if len(files) > 0 {
				files[0] = custom
			} else {
				files = append(files, custom)
			}
			break
		}
	}

	for _, file := range files {
		p.loadEnvFile(utils.ExpandHome(file))
	}
}

// loadEnvFile reads KEY=VALUE lines. Keys already defined keep their
// value; blank lines and lines starting with '#' are skipped.
func (p *Params) loadEnvFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("Failed to open env file %s: %v", path, err)
		}
		return
	}
	defer utils.CloseOrWarn(f)

	log.Debugf("Loading env file %s", path)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if _, exists := p.fileVals[key]; exists {
			continue
		}
		p.fileVals[key] = strings.TrimSpace(value)
	}
	if err := scanner.Err(); err != nil {
		log.Warnf("Failed to read env file %s: %v", path, err)
	}
}
