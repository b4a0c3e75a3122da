package networking

import (
	"context"

	"github.com/maksimkurb/ifselect/src/internal/log"
)

// Parameter names read by the selector.
const (
	ParamSocketFamily = "SOCKET_FAMILY"
	ParamSocketIfname = "SOCKET_IFNAME"
	ParamCommID       = "COMM_ID"
)

// ConfigSource is the read side of the parameter store.
type ConfigSource interface {
	Get(name string) (string, bool)
}

// SelectionStep names the cascade step that produced a selection.
type SelectionStep string

const (
	StepUserFilter SelectionStep = "user-filter"
	StepInfiniband SelectionStep = "infiniband"
	StepCommID     SelectionStep = "comm-id-subnet"
	StepNonDocker  SelectionStep = "non-docker"
	StepDocker     SelectionStep = "docker"
	StepLoopback   SelectionStep = "loopback"
)

// Selection is the outcome of a cascade run.
type Selection struct {
	Step       SelectionStep   `json:"step"`
	Interfaces SelectionResult `json:"interfaces"`
}

// InterfaceSelector picks the interfaces a networking stack should bind to.
//
// The selection follows a cascade and stops at the first step that yields at
// least one interface:
//  1. SOCKET_IFNAME, if set, is used as a filter spec and its result is
//     returned even when empty
//  2. InfiniBand interfaces ("ib")
//  3. interfaces in the same subnet as the COMM_ID endpoint
//  4. anything except docker and loopback ("^docker,lo")
//  5. docker interfaces
//  6. loopback, returned even when empty
//
// SOCKET_FAMILY restricts every enumeration step to AF_INET or AF_INET6.
type InterfaceSelector struct {
	enum   *Enumerator
	parser *EndpointParser
	params ConfigSource
}

// NewInterfaceSelector creates a selector. The params source is consulted on
// every call, so changes to it are picked up without rebuilding the selector.
func NewInterfaceSelector(enum *Enumerator, parser *EndpointParser, params ConfigSource) *InterfaceSelector {
	return &InterfaceSelector{
		enum:   enum,
		parser: parser,
		params: params,
	}
}

// SelectInterfaces runs the cascade and returns the chosen interfaces.
func (s *InterfaceSelector) SelectInterfaces(ctx context.Context, maxResults int) (SelectionResult, error) {
	sel, err := s.Select(ctx, maxResults)
	return sel.Interfaces, err
}

// Select runs the cascade and reports which step produced the result.
// Enumeration failures abort the cascade.
func (s *InterfaceSelector) Select(ctx context.Context, maxResults int) (Selection, error) {
	family := FamilyAny
	if v, ok := s.param(ParamSocketFamily); ok {
		family = ParseFamily(v)
		log.Debugf("%s set to %s", ParamSocketFamily, v)
	}

	if spec, ok := s.param(ParamSocketIfname); ok && len(spec) > 1 {
		log.Debugf("%s set to %s", ParamSocketIfname, spec)
		found, err := s.enum.FindInterfaces(spec, family, maxResults)
		return Selection{Step: StepUserFilter, Interfaces: found}, err
	}

	steps := []struct {
		step SelectionStep
		run  func() (SelectionResult, error)
	}{
		{StepInfiniband, func() (SelectionResult, error) { return s.enum.FindInterfaces("ib", family, maxResults) }},
		{StepCommID, func() (SelectionResult, error) { return s.matchCommID(ctx, maxResults) }},
		{StepNonDocker, func() (SelectionResult, error) { return s.enum.FindInterfaces("^docker,lo", family, maxResults) }},
		{StepDocker, func() (SelectionResult, error) { return s.enum.FindInterfaces("docker", family, maxResults) }},
	}
	for _, st := range steps {
		found, err := st.run()
		if err != nil {
			return Selection{Step: st.step}, err
		}
		if len(found) > 0 {
			s.logChosen(st.step, found)
			return Selection{Step: st.step, Interfaces: found}, nil
		}
	}

	found, err := s.enum.FindInterfaces("lo", family, maxResults)
	if err == nil && len(found) > 0 {
		s.logChosen(StepLoopback, found)
	}
	return Selection{Step: StepLoopback, Interfaces: found}, err
}

// matchCommID looks for interfaces sharing a subnet with COMM_ID. A COMM_ID
// that cannot be parsed or resolved is logged and skipped.
func (s *InterfaceSelector) matchCommID(ctx context.Context, maxResults int) (SelectionResult, error) {
	commID, ok := s.param(ParamCommID)
	if !ok || len(commID) <= 1 {
		return nil, nil
	}
	log.Debugf("%s set to %s", ParamCommID, commID)

	remote, err := s.parser.Parse(ctx, commID)
	if err != nil {
		log.Warnf("Ignoring %s %q: %v", ParamCommID, commID, err)
		return nil, nil
	}
	return s.enum.FindInterfaceMatchSubnet(remote, maxResults)
}

func (s *InterfaceSelector) param(name string) (string, bool) {
	if s.params == nil {
		return "", false
	}
	return s.params.Get(name)
}

func (s *InterfaceSelector) logChosen(step SelectionStep, found SelectionResult) {
	for _, iface := range found {
		log.Debugf(" -> %s %s (%s)", iface.Name, iface.Addr, step)
	}
}
