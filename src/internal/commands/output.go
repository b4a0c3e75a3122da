package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/valyala/fasttemplate"

	"github.com/maksimkurb/ifselect/src/internal/networking"
)

// Placeholders available in -format templates.
const (
	TMPL_NAME   = "name"
	TMPL_ADDR   = "addr"
	TMPL_HOST   = "host"
	TMPL_PORT   = "port"
	TMPL_FAMILY = "family"
	TMPL_INDEX  = "index"
	TMPL_UP     = "up"
)

const defaultInterfaceFormat = "{{index}}\t{{name}}\t{{addr}}"

func interfaceTemplateValues(index int, iface networking.SelectedInterface) map[string]interface{} {
	return map[string]interface{}{
		TMPL_INDEX:  strconv.Itoa(index),
		TMPL_NAME:   iface.Name,
		TMPL_ADDR:   iface.Addr.String(),
		TMPL_HOST:   iface.Addr.Host(),
		TMPL_PORT:   strconv.FormatUint(uint64(iface.Addr.PortNumber()), 10),
		TMPL_FAMILY: iface.Addr.Family().String(),
		TMPL_UP:     linkState(iface.Up),
	}
}

func linkState(up bool) string {
	if up {
		return "up"
	}
	return "down"
}

// renderInterfaces writes one line per interface using a fasttemplate
// template with {{...}} placeholders.
func renderInterfaces(w io.Writer, format string, found networking.SelectionResult) error {
	if format == "" {
		format = defaultInterfaceFormat
	}
	t, err := fasttemplate.NewTemplate(format, "{{", "}}")
	if err != nil {
		return fmt.Errorf("invalid format %q: %w", format, err)
	}

	for i, iface := range found {
		if _, err := fmt.Fprintln(w, t.ExecuteString(interfaceTemplateValues(i, iface))); err != nil {
			return err
		}
	}
	return nil
}

// renderAddress writes a single address using the same placeholders, with
// an empty name and index 0.
func renderAddress(w io.Writer, format string, addr networking.SockAddr) error {
	if format == "" {
		format = "{{addr}}"
	}
	return renderInterfaces(w, format, networking.SelectionResult{{Addr: addr}})
}
