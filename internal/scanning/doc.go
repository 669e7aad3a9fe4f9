// Package scanning provides the scan simulation engine for portsim.
//
// No packets are sent. A scan walks a virtual cursor across a port range, one
// port per tick, and probabilistically reports findings: a port from a small
// candidate set may be reported open, and every tenth cursor position may be
// reported closed. A run moves through idle, running, paused, completed and
// cancelled states.
//
// # Main Components
//
//   - Config and PortRange: validated user input for a scan
//   - Step: the pure per-tick transition over a State
//   - Engine: owns one run, applies Step from a Scheduler and notifies Observers
//   - Summary: aggregate frozen when a run completes
//
// # Usage
//
//	engine := scanning.NewEngine(scanning.WithInterval(50 * time.Millisecond))
//	unsubscribe := engine.Subscribe(scanning.ObserverFunc(func(s scanning.Snapshot) {
//		fmt.Printf("%s %.1f%%\n", s.Status, s.Progress)
//	}))
//	defer unsubscribe()
//
//	err := engine.Start(scanning.Config{
//		Target:   "10.0.0.5",
//		Range:    scanning.PortRange{Start: 1, End: 100},
//		ScanType: scanning.ScanTypeTCP,
//	})
//
// Clock, RandomSource and Scheduler are injected so tests can drive the
// engine deterministically without real timers.
package scanning
