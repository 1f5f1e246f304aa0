// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package hardware describes the port layout of MikroTik switch models and
// seeds a backend with their factory interfaces.
//
// Seeding lets a ScriptBackend stand in for an unconfigured device: a
// configuration that renames ether1 or bridges sfp1 then finds those
// interfaces in the mirror, exactly as it would on the real hardware.
package hardware

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/netascode/go-routeros"
	"github.com/netascode/go-routeros/resources"
)

//go:embed models.yaml
var catalogue []byte

// Known model names
const (
	CRS109 = "CRS109"
	CRS326 = "CRS326"
)

// SwitchChip identifies the switch ASIC of a model
type SwitchChip string

const (
	SwitchChipQCA8513L SwitchChip = "QCA8513L"
	SwitchChip98DX3236 SwitchChip = "98DX3236"
)

// PortGroup is either a single named port or a numbered series prefix1..prefixN
type PortGroup struct {
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
	Count  int    `yaml:"count"`
}

// Model is one entry of the catalogue
type Model struct {
	Name        string      `yaml:"-"`
	Description string      `yaml:"description"`
	SwitchChip  SwitchChip  `yaml:"switch_chip"`
	Ethernet    []PortGroup `yaml:"ethernet"`
	Wireless    []PortGroup `yaml:"wireless"`
}

type catalogueFile struct {
	Models map[string]*Model `yaml:"models"`
}

var (
	loadOnce sync.Once
	models   map[string]*Model
	loadErr  error
)

func load() (map[string]*Model, error) {
	loadOnce.Do(func() {
		models, loadErr = parseCatalogue(catalogue)
	})
	return models, loadErr
}

func parseCatalogue(data []byte) (map[string]*Model, error) {
	var f catalogueFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse hardware catalogue: %w", err)
	}
	out := make(map[string]*Model, len(f.Models))
	for name, m := range f.Models {
		if m == nil {
			return nil, fmt.Errorf("model %s: empty definition", name)
		}
		for _, g := range append(append([]PortGroup{}, m.Ethernet...), m.Wireless...) {
			if err := g.validate(); err != nil {
				return nil, fmt.Errorf("model %s: %w", name, err)
			}
		}
		m.Name = name
		out[strings.ToUpper(name)] = m
	}
	return out, nil
}

func (g PortGroup) validate() error {
	switch {
	case g.Name != "" && g.Prefix != "":
		return fmt.Errorf("port group sets both name %q and prefix %q", g.Name, g.Prefix)
	case g.Name != "":
		return nil
	case g.Prefix == "":
		return fmt.Errorf("port group needs a name or a prefix")
	case g.Count < 1:
		return fmt.Errorf("port group %s: count must be positive, got %d", g.Prefix, g.Count)
	}
	return nil
}

// Lookup returns the model with the given name (case-insensitive)
func Lookup(name string) (*Model, error) {
	all, err := load()
	if err != nil {
		return nil, err
	}
	m, ok := all[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown hardware model %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the catalogue's model names in sorted order
func Names() []string {
	all, _ := load()
	names := make([]string, 0, len(all))
	for _, m := range all {
		names = append(names, m.Name)
	}
	sort.Strings(names)
	return names
}

func expand(groups []PortGroup) []string {
	var names []string
	for _, g := range groups {
		if g.Name != "" {
			names = append(names, g.Name)
			continue
		}
		for i := 1; i <= g.Count; i++ {
			names = append(names, g.Prefix+strconv.Itoa(i))
		}
	}
	return names
}

// EthernetInterfaceNames returns the default names of the ethernet and SFP ports
func (m *Model) EthernetInterfaceNames() []string { return expand(m.Ethernet) }

// WirelessInterfaceNames returns the default names of the wireless interfaces
func (m *Model) WirelessInterfaceNames() []string { return expand(m.Wireless) }

func ethernetDefaultName(e *resources.InterfaceEthernet) *routeros.StringField { return &e.DefaultName }

func wirelessDefaultName(w *resources.Wireless) *routeros.StringField { return &w.DefaultName }

// Init makes sure every factory interface of the model exists on b.
//
// Interfaces are matched by default-name, so running Init against a real
// device of the same model changes nothing.
func (m *Model) Init(ctx context.Context, b routeros.Backend) error {
	eth, err := routeros.Fetch[resources.InterfaceEthernet](ctx, b)
	if err != nil {
		return fmt.Errorf("fetch ethernet interfaces: %w", err)
	}
	wlan, err := routeros.Fetch[resources.Wireless](ctx, b)
	if err != nil {
		return fmt.Errorf("fetch wireless interfaces: %w", err)
	}

	for _, name := range m.EthernetInterfaceNames() {
		routeros.GetOrCreateByValue(eth, ethernetDefaultName, name)
	}
	for _, name := range m.WirelessInterfaceNames() {
		routeros.GetOrCreateByValue(wlan, wirelessDefaultName, name)
	}

	if err := wlan.Commit(ctx, b); err != nil {
		return fmt.Errorf("commit wireless interfaces: %w", err)
	}
	if err := eth.Commit(ctx, b); err != nil {
		return fmt.Errorf("commit ethernet interfaces: %w", err)
	}
	return nil
}

// NewScriptBackend returns a script backend that already holds the factory
// interfaces of the named model. The seeding itself is not part of the script.
func NewScriptBackend(ctx context.Context, model string, opts ...routeros.ScriptOption) (*routeros.ScriptBackend, error) {
	m, err := Lookup(model)
	if err != nil {
		return nil, err
	}
	script := routeros.NewScriptBackend(opts...)
	if err := m.Init(ctx, script); err != nil {
		return nil, err
	}
	script.Dump()
	return script, nil
}
