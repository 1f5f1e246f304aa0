// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package routeros provides typed, diff-based configuration of MikroTik
// RouterOS devices.
//
// Resources are fetched into a Collection, modified in memory and committed
// back. Every field remembers the value the device reported, so a commit only
// sends what actually changed. The same code can target a live device over
// the binary API (Client), the REST API (RESTClient), or render a
// configuration script offline (ScriptBackend).
//
// # Quick Start
//
//	client, err := routeros.NewClient(
//	    "192.168.88.1",
//	    routeros.Username("admin"),
//	    routeros.Password("secret"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//	ports, err := routeros.Fetch[resources.BridgePort](ctx, client)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port := routeros.GetOrCreateByValue(ports,
//	    func(p *resources.BridgePort) *routeros.StringField { return &p.Interface },
//	    "ether2")
//	port.Bridge.Set("bridge1")
//	port.PVID.Set(20)
//
//	if err := ports.Commit(ctx, client); err != nil {
//	    log.Fatal(err)
//	}
//
// # Replacing a Set of Rows
//
// PutAside marks rows as stale. Rows looked up again before Commit are
// kept, all others are deleted:
//
//	ports.PutAside(func(p *resources.BridgePort) bool {
//	    b, _ := p.Bridge.Get()
//	    return b == "bridge1"
//	})
//	for _, name := range []string{"ether2", "ether3"} {
//	    routeros.GetOrCreateByValue(ports, bridgePortInterface, name).Bridge.Set("bridge1")
//	}
//	err = ports.Commit(ctx, client) // deletes bridge1 ports other than ether2/ether3
//
// # Offline Scripts
//
//	script := routeros.NewScriptBackend()
//	identity, _ := routeros.Get[resources.SystemIdentity](ctx, script)
//	identity.Get().Name.Set("core-sw1")
//	_ = identity.Commit(ctx, script)
//	fmt.Print(script.Script())
//
// # Error Handling
//
// Operations never retry. Failures are returned as structured errors:
//
//	var trap *routeros.TrapError
//	if errors.As(err, &trap) {
//	    log.Printf("device rejected command: %s", trap.Message)
//	}
//
// Row decode failures of a list are collected (see go.uber.org/multierr)
// and returned together with the rows that decoded.
//
// # Logging
//
// Logging is disabled by default. Use WithLogger with DefaultLogger,
// ZerologLogger or an adapter of your own. Passwords are redacted from
// debug output.
//
// # Thread Safety
//
// A Client serializes conversations and may be shared. Collections and the
// ScriptBackend are meant for a single goroutine.
package routeros
