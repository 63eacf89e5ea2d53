package matrix

import (
	"sort"
	"strings"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/natsort"
	"github.com/aretw0/patchbay/pkg/routing"
)

// Display names of the fixed classification groups, in the order Gather
// adds them. The program's own group is named by ProgramGroupName.
const (
	GroupBusses     = "Busses"
	GroupTracks     = "Tracks"
	GroupSidechains = "Sidechains"
	GroupIOPre      = "I/O Pre"
	GroupIOPost     = "I/O Post"
	GroupExternal   = "External"
	GroupHardware   = "Hardware"
)

// ProgramGroupName returns the display name of the group collecting the
// program's own miscellaneous ports.
func ProgramGroupName(program string) string {
	return program + " Misc"
}

// ioPair is anything exposing one IO per transfer direction.
type ioPair interface {
	Input() routing.IO
	Output() routing.IO
}

func ioFor(v ioPair, d domain.Direction) routing.IO {
	if d == domain.DirInput {
		return v.Input()
	}
	return v.Output()
}

// routeIOs collects one route's discovered IOs during a gather pass so
// routes can be sorted before any bundle lands in a group.
type routeIOs struct {
	route routing.Route
	ios   []routing.IO
}

// Gather rebuilds the list from src: it classifies every reachable
// bundle and port into the fixed groups, adds the non-empty groups in
// display order, and fires exactly one Changed for the whole pass.
//
// t filters by data type; DataTypeNil admits everything. dir selects
// which side of each IO is visible. allowDups disables both structural
// duplicate suppression and the final subsumption pass. useSessionBundles
// admits non-user session bundles into the Hardware group alongside the
// user-authored ones.
//
// A nil src leaves the list cleared.
func (l *PortGroupList) Gather(src routing.Source, t domain.DataType, dir domain.Direction, allowDups, useSessionBundles bool) {
	resume := l.batch()
	defer resume()

	l.Clear()
	if src == nil {
		return
	}

	bus := NewPortGroup(GroupBusses)
	track := NewPortGroup(GroupTracks)
	sidechain := NewPortGroup(GroupSidechains)
	iopPre := NewPortGroup(GroupIOPre)
	iopPost := NewPortGroup(GroupIOPost)
	system := NewPortGroup(GroupHardware)
	program := NewPortGroup(ProgramGroupName(src.ProgramName()))
	other := NewPortGroup(GroupExternal)

	inputs := dir == domain.DirInput
	engine := src.Engine()

	// Collect all the routes' IOs first, so the whole set can be
	// ordered by presentation order before any bundle lands in a group.
	var rios []routeIOs
	for _, r := range src.Routes() {
		// The monitor bus never advertises its inputs.
		if inputs && r.Kind() == routing.KindMonitor {
			continue
		}

		primary := ioFor(r, dir)
		used := map[routing.IO]struct{}{primary: {}}
		rio := routeIOs{route: r, ios: []routing.IO{primary}}

		for _, p := range r.Processors() {
			io := ioFor(p, dir)
			if io == nil {
				continue
			}
			if _, seen := used[io]; seen {
				continue
			}
			used[io] = struct{}{}
			rio.ios = append(rio.ios, io)
		}
		rios = append(rios, rio)
	}

	sort.SliceStable(rios, func(i, j int) bool {
		return rios[i].route.PresentationOrder() < rios[j].route.PresentationOrder()
	})

	for _, rio := range rios {
		g := bus
		if rio.route.Kind() == routing.KindTrack {
			g = track
		}
		color, hasColor := rio.route.Color()

		for _, io := range rio.ios {
			// Only bundles with at least one port of the requested
			// type are worth showing.
			b := io.Bundle()
			if t != domain.DataTypeNil && b.ChannelCount().Get(t) == 0 {
				continue
			}
			opts := []AddOption{WithOwner(io.Ref())}
			if hasColor {
				opts = append(opts, WithColor(color))
			}
			g.Add(b, opts...)
		}

		// Sidechain inputs sit in their own group, colored like the
		// route they feed.
		if inputs {
			for _, p := range rio.route.Processors() {
				sc := p.Sidechain()
				if sc == nil {
					continue
				}
				opts := []AddOption{WithOwner(sc.Ref())}
				if hasColor {
					opts = append(opts, WithColor(color))
				}
				sidechain.Add(sc.Bundle(), opts...)
			}
		}
	}

	var dupOpts []AddOption
	if allowDups {
		dupOpts = []AddOption{AllowDuplicates()}
	}

	// User-authored session bundles go first so they win duplicate
	// suppression against generated hardware pairs.
	for _, b := range src.Bundles() {
		if b.Scope() == domain.ScopeUser && b.Direction() == dir {
			system.Add(b, dupOpts...)
		}
	}
	if useSessionBundles {
		for _, b := range src.Bundles() {
			if b.Scope() != domain.ScopeUser && b.Direction() == dir {
				system.Add(b, dupOpts...)
			}
		}
	}

	special := src.Special()

	if t == domain.DataTypeAudio || t == domain.DataTypeNil {
		if !inputs {
			if special.Auditioner != nil {
				program.Add(special.Auditioner.Bundle())
			}
			if special.Click != nil {
				program.Add(special.Click.Bundle())
			}
			if special.LTCOut != "" {
				ltc := domain.NewBundle("LTC Out", dir)
				ltc.AddChannel("LTC Out", domain.DataTypeAudio, engine.QualifiedName(special.LTCOut))
				program.Add(ltc)
			}
		} else {
			sync := domain.NewBundle("Sync", dir)
			for _, tm := range src.TransportMasters() {
				port, ok := tm.Port()
				if !ok || port.Type != domain.DataTypeAudio {
					continue
				}
				sync.AddChannel(tm.Name(), domain.DataTypeAudio, port.Name)
			}
			program.Add(sync)
		}
	}

	if t == domain.DataTypeMIDI || t == domain.DataTypeNil {
		for _, s := range src.Surfaces() {
			for _, b := range s.Bundles() {
				if b.Direction() == dir {
					program.Add(b)
				}
			}
		}

		if !inputs && special.VKeyboardOut != "" {
			qualified := engine.QualifiedName(special.VKeyboardOut)
			display := qualified
			if port, ok := engine.LookupPort(qualified); ok && port.PrettyName != "" {
				display = port.PrettyName
			}
			vkbd := domain.NewBundle(display, dir)
			vkbd.AddChannel(display, domain.DataTypeMIDI, qualified)
			program.Add(vkbd)
		}

		sync := domain.NewBundle("Sync", dir)
		if inputs {
			for _, tm := range src.TransportMasters() {
				port, ok := tm.Port()
				if !ok || port.Type != domain.DataTypeMIDI {
					continue
				}
				sync.AddChannel(tm.Name(), domain.DataTypeMIDI, port.Name)
			}
			if special.MMCIn != "" {
				sync.AddChannel("MMC in", domain.DataTypeMIDI, engine.QualifiedName(special.MMCIn))
			}
		} else {
			if special.MTCOut != "" {
				sync.AddChannel("MTC out", domain.DataTypeMIDI, engine.QualifiedName(special.MTCOut))
			}
			if special.MIDIClockOut != "" {
				sync.AddChannel("MIDI clock out", domain.DataTypeMIDI, engine.QualifiedName(special.MIDIClockOut))
			}
			if special.MMCOut != "" {
				sync.AddChannel("MMC out", domain.DataTypeMIDI, engine.QualifiedName(special.MMCOut))
			}
		}
		program.Add(sync)
	}

	for _, plug := range src.IOPlugs() {
		io := ioFor(plug, dir)
		if io == nil {
			continue
		}
		n := io.Bundle().ChannelCount()
		if n.Total() == 0 {
			continue
		}
		if t != domain.DataTypeNil && n.Get(t) == 0 {
			continue
		}
		g := iopPost
		if plug.Pre() {
			g = iopPre
		}
		g.Add(io.Bundle(), WithOwner(io.Ref()))
	}

	// Now find all other ports that the engine knows about and which
	// no group claimed yet.
	lpn := strings.ToLower(src.ProgramName())
	lpnc := lpn + ":"

	var ports []string
	if t == domain.DataTypeNil {
		ports = append(ports, engine.PortNames(domain.DataTypeAudio, dir)...)
		ports = append(ports, engine.PortNames(domain.DataTypeMIDI, dir)...)
	} else {
		ports = append(ports, engine.PortNames(t, dir)...)
	}
	natsort.Strings(ports)

	claimed := []*PortGroup{system, bus, track, iopPre, iopPost, sidechain, program, other}

	extraSystem := map[domain.DataType][]string{}
	extraProgram := map[domain.DataType][]string{}
	extraOther := map[domain.DataType][]string{}

	for _, p := range ports {
		if !allowDups && anyGroupHasPort(claimed, p) {
			continue
		}

		// MIDI through ports tend to wire the program back into
		// itself, so keep them out of sight.
		if strings.Contains(p, "Midi-Through") || strings.Contains(p, "Midi Through") {
			continue
		}

		// The monitor bus was skipped above, so its ports would land
		// here; hide those too.
		lp := strings.ToLower(p)
		if strings.Contains(lp, "monitor") && strings.Contains(lp, lpn) {
			continue
		}

		port, ok := engine.LookupPort(p)
		if !ok {
			continue
		}
		if port.Type == domain.DataTypeNil {
			continue
		}
		if port.Flags.IsHidden() {
			continue
		}

		switch {
		case strings.HasPrefix(p, lpnc):
			// Ports the program itself registered count as its own
			// even when flagged physical.
			extraProgram[port.Type] = append(extraProgram[port.Type], p)
		case port.Flags.IsPhysical():
			extraSystem[port.Type] = append(extraSystem[port.Type], p)
		default:
			extraOther[port.Type] = append(extraOther[port.Type], p)
		}
	}

	for _, dt := range domain.DataTypes() {
		if len(extraSystem[dt]) > 0 {
			addBundlesForPorts(system, extraSystem[dt], dt, dir, allowDups, engine)
		}
	}
	for _, dt := range domain.DataTypes() {
		if len(extraProgram[dt]) > 0 {
			program.Add(makeBundleFromPorts(extraProgram[dt], dt, dir, lpn, engine))
		}
	}
	for _, dt := range domain.DataTypes() {
		if len(extraOther[dt]) > 0 {
			addBundlesForPorts(other, extraOther[dt], dt, dir, allowDups, engine)
		}
	}

	if !allowDups {
		system.RemoveDuplicates()
	}

	l.AddGroupIfNotEmpty(bus)
	l.AddGroupIfNotEmpty(track)
	l.AddGroupIfNotEmpty(sidechain)
	l.AddGroupIfNotEmpty(iopPre)
	l.AddGroupIfNotEmpty(iopPost)
	l.AddGroupIfNotEmpty(program)
	l.AddGroupIfNotEmpty(other)
	l.AddGroupIfNotEmpty(system)

	l.emitChanged()
}

func anyGroupHasPort(groups []*PortGroup, port string) bool {
	for _, g := range groups {
		if g.HasPort(port) {
			return true
		}
	}
	return false
}

// addBundlesForPorts carves a leftover port list into bundles and adds
// them to g: one bundle per contiguous run of names sharing a prefix up
// to their first separator, or a single bundle when the list has no
// common separator.
func addBundlesForPorts(g *PortGroup, ports []string, t domain.DataType, dir domain.Direction, allowDups bool, engine routing.PortEngine) {
	var opts []AddOption
	if allowDups {
		opts = []AddOption{AllowDuplicates()}
	}

	sep := detectSeparator(ports)
	if sep == 0 {
		g.Add(makeBundleFromPorts(ports, t, dir, "", engine), opts...)
		return
	}
	for _, run := range splitRuns(ports, sep) {
		g.Add(makeBundleFromPorts(run, t, dir, "", engine), opts...)
	}
}

// makeBundleFromPorts builds one bundle around leftover port names,
// one port per channel. With no explicit name the ports' common prefix
// names the bundle, minus its trailing separator. Channel names prefer
// the engine's pretty name, falling back to the port name with the
// common prefix stripped.
func makeBundleFromPorts(ports []string, t domain.DataType, dir domain.Direction, name string, engine routing.PortEngine) *domain.Bundle {
	b := domain.NewBundle("", dir)

	pre := commonPrefix(ports)
	if name != "" {
		b.SetName(name)
	} else if pre != "" {
		b.SetName(pre[:len(pre)-1])
	}

	for i, p := range ports {
		n := strings.TrimPrefix(p, pre)
		if port, ok := engine.LookupPort(p); ok && port.PrettyName != "" {
			n = port.PrettyName
		}
		b.AddChannel(n, t)
		b.SetPort(i, p)
	}
	return b
}
