// Package sessionfile loads session descriptions from YAML or JSON
// files and builds in-memory routing sources from them. It exists so
// the CLI and examples can gather against a session without a running
// audio program behind it.
package sessionfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/patchbay/pkg/adapters/memory"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/routing"
)

// File is the on-disk shape of a session description.
type File struct {
	Program          string            `yaml:"program" json:"program"`
	Routes           []Route           `yaml:"routes" json:"routes"`
	Bundles          []Bundle          `yaml:"bundles" json:"bundles"`
	Ports            []Port            `yaml:"ports" json:"ports"`
	IOPlugs          []IOPlug          `yaml:"io_plugs" json:"io_plugs"`
	Surfaces         []Surface         `yaml:"surfaces" json:"surfaces"`
	TransportMasters []TransportMaster `yaml:"transport_masters" json:"transport_masters"`
	Special          Special           `yaml:"special" json:"special"`
}

// Route describes one route. Kind is "track", "bus", or "monitor"; an
// empty kind means bus.
type Route struct {
	Name       string      `yaml:"name" json:"name"`
	Kind       string      `yaml:"kind" json:"kind"`
	Order      int         `yaml:"order" json:"order"`
	Color      string      `yaml:"color" json:"color"`
	AudioIn    int         `yaml:"audio_in" json:"audio_in"`
	AudioOut   int         `yaml:"audio_out" json:"audio_out"`
	MidiIn     int         `yaml:"midi_in" json:"midi_in"`
	MidiOut    int         `yaml:"midi_out" json:"midi_out"`
	Processors []Processor `yaml:"processors" json:"processors"`
}

// Processor describes a processor hanging off a route: either an IO
// processor with its own sides, or a sidechain input.
type Processor struct {
	Name      string `yaml:"name" json:"name"`
	AudioIn   int    `yaml:"audio_in" json:"audio_in"`
	AudioOut  int    `yaml:"audio_out" json:"audio_out"`
	Sidechain bool   `yaml:"sidechain" json:"sidechain"`
	Width     int    `yaml:"width" json:"width"`
}

// Bundle describes a session bundle.
type Bundle struct {
	Name      string    `yaml:"name" json:"name"`
	User      bool      `yaml:"user" json:"user"`
	Direction string    `yaml:"direction" json:"direction"`
	Channels  []Channel `yaml:"channels" json:"channels"`
}

// Channel describes one bundle channel.
type Channel struct {
	Name  string   `yaml:"name" json:"name"`
	Type  string   `yaml:"type" json:"type"`
	Ports []string `yaml:"ports" json:"ports"`
}

// Port describes an engine port, e.g. a hardware channel.
type Port struct {
	Name      string `yaml:"name" json:"name"`
	Type      string `yaml:"type" json:"type"`
	Direction string `yaml:"direction" json:"direction"`
	Physical  bool   `yaml:"physical" json:"physical"`
	Hidden    bool   `yaml:"hidden" json:"hidden"`
	Terminal  bool   `yaml:"terminal" json:"terminal"`
	Pretty    string `yaml:"pretty" json:"pretty"`
}

// IOPlug describes a standalone plugin.
type IOPlug struct {
	Name     string `yaml:"name" json:"name"`
	Pre      bool   `yaml:"pre" json:"pre"`
	AudioIn  int    `yaml:"audio_in" json:"audio_in"`
	AudioOut int    `yaml:"audio_out" json:"audio_out"`
	MidiIn   int    `yaml:"midi_in" json:"midi_in"`
	MidiOut  int    `yaml:"midi_out" json:"midi_out"`
}

// Surface describes a control surface and the bundles it advertises.
type Surface struct {
	Name    string   `yaml:"name" json:"name"`
	Bundles []Bundle `yaml:"bundles" json:"bundles"`
}

// TransportMaster describes an external time source.
type TransportMaster struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
	Port string `yaml:"port" json:"port"`
}

// Special wires the program's special ports. Width fields create IOs;
// name fields are program-local port names, registered on build.
type Special struct {
	ClickOuts      int    `yaml:"click_outs" json:"click_outs"`
	AuditionerOuts int    `yaml:"auditioner_outs" json:"auditioner_outs"`
	LTCOut         string `yaml:"ltc_out" json:"ltc_out"`
	MTCOut         string `yaml:"mtc_out" json:"mtc_out"`
	MIDIClockOut   string `yaml:"midi_clock_out" json:"midi_clock_out"`
	MMCIn          string `yaml:"mmc_in" json:"mmc_in"`
	MMCOut         string `yaml:"mmc_out" json:"mmc_out"`
	VKeyboardOut   string `yaml:"vkeyboard_out" json:"vkeyboard_out"`
}

// Load reads a session description from disk. ".json" paths parse as
// JSON; everything else parses as YAML.
func Load(path string) (*memory.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return Build(&f)
}

// Parse builds a session from YAML bytes.
func Parse(data []byte) (*memory.Session, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	return Build(&f)
}

// Build turns a parsed description into a live session.
func Build(f *File) (*memory.Session, error) {
	program := f.Program
	if program == "" {
		program = "patchbay"
	}
	s := memory.NewSession(program)

	for _, p := range f.Ports {
		port, err := buildPort(p)
		if err != nil {
			return nil, err
		}
		name := s.Ports().RegisterPort(port)
		if p.Pretty != "" {
			s.Ports().SetPrettyName(name, p.Pretty)
		}
	}

	for _, r := range f.Routes {
		kind, err := parseKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", r.Name, err)
		}
		route := s.AddRoute(memory.RouteConfig{
			Name:     r.Name,
			Kind:     kind,
			Order:    r.Order,
			Color:    r.Color,
			AudioIn:  r.AudioIn,
			AudioOut: r.AudioOut,
			MidiIn:   r.MidiIn,
			MidiOut:  r.MidiOut,
		})
		for _, p := range r.Processors {
			if p.Sidechain {
				width := p.Width
				if width == 0 {
					width = 1
				}
				route.AddSidechain(p.Name, width)
			} else {
				route.AddIOProcessor(p.Name, p.AudioIn, p.AudioOut)
			}
		}
	}

	for _, b := range f.Bundles {
		bundle, err := buildBundle(b)
		if err != nil {
			return nil, err
		}
		s.AddSessionBundle(bundle)
	}

	for _, p := range f.IOPlugs {
		s.AddIOPlug(memory.IOPlugConfig{
			Name:     p.Name,
			Pre:      p.Pre,
			AudioIn:  p.AudioIn,
			AudioOut: p.AudioOut,
			MidiIn:   p.MidiIn,
			MidiOut:  p.MidiOut,
		})
	}

	for _, sf := range f.Surfaces {
		bundles := make([]*domain.Bundle, 0, len(sf.Bundles))
		for _, b := range sf.Bundles {
			bundle, err := buildBundle(b)
			if err != nil {
				return nil, fmt.Errorf("surface %q: %w", sf.Name, err)
			}
			bundles = append(bundles, bundle)
		}
		s.AddSurface(sf.Name, bundles...)
	}

	for _, m := range f.TransportMasters {
		t, err := domain.ParseDataType(m.Type)
		if err != nil {
			return nil, fmt.Errorf("transport master %q: %w", m.Name, err)
		}
		s.AddTransportMaster(m.Name, t, m.Port)
	}

	special := routing.SpecialPorts{
		LTCOut:       f.Special.LTCOut,
		MTCOut:       f.Special.MTCOut,
		MIDIClockOut: f.Special.MIDIClockOut,
		MMCIn:        f.Special.MMCIn,
		MMCOut:       f.Special.MMCOut,
		VKeyboardOut: f.Special.VKeyboardOut,
	}
	if f.Special.ClickOuts > 0 {
		special.Click = s.NewIO("Click", domain.DirOutput, f.Special.ClickOuts, 0)
	}
	if f.Special.AuditionerOuts > 0 {
		special.Auditioner = s.NewIO("Auditioner", domain.DirOutput, f.Special.AuditionerOuts, 0)
	}
	registerSpecialPort(s, special.LTCOut, domain.DataTypeAudio, domain.PortIsOutput)
	registerSpecialPort(s, special.MTCOut, domain.DataTypeMIDI, domain.PortIsOutput)
	registerSpecialPort(s, special.MIDIClockOut, domain.DataTypeMIDI, domain.PortIsOutput)
	registerSpecialPort(s, special.MMCIn, domain.DataTypeMIDI, domain.PortIsInput)
	registerSpecialPort(s, special.MMCOut, domain.DataTypeMIDI, domain.PortIsOutput)
	registerSpecialPort(s, special.VKeyboardOut, domain.DataTypeMIDI, domain.PortIsOutput)
	s.SetSpecialPorts(special)

	return s, nil
}

func registerSpecialPort(s *memory.Session, local string, t domain.DataType, flags domain.PortFlags) {
	if local == "" {
		return
	}
	s.Ports().RegisterPort(routing.Port{Name: local, Type: t, Flags: flags})
}

func buildPort(p Port) (routing.Port, error) {
	t, err := domain.ParseDataType(p.Type)
	if err != nil {
		return routing.Port{}, fmt.Errorf("port %q: %w", p.Name, err)
	}
	if t == domain.DataTypeNil {
		return routing.Port{}, fmt.Errorf("port %q: type required", p.Name)
	}
	d, err := domain.ParseDirection(p.Direction)
	if err != nil {
		return routing.Port{}, fmt.Errorf("port %q: %w", p.Name, err)
	}

	flags := domain.PortIsInput
	if d == domain.DirOutput {
		flags = domain.PortIsOutput
	}
	if p.Physical {
		flags |= domain.PortIsPhysical
	}
	if p.Hidden {
		flags |= domain.PortIsHidden
	}
	if p.Terminal {
		flags |= domain.PortIsTerminal
	}
	return routing.Port{Name: p.Name, Type: t, Flags: flags}, nil
}

func buildBundle(b Bundle) (*domain.Bundle, error) {
	d, err := domain.ParseDirection(b.Direction)
	if err != nil {
		return nil, fmt.Errorf("bundle %q: %w", b.Name, err)
	}

	var bundle *domain.Bundle
	if b.User {
		bundle = domain.NewUserBundle(b.Name, d)
	} else {
		bundle = domain.NewBundle(b.Name, d)
	}

	for _, ch := range b.Channels {
		t, err := domain.ParseDataType(ch.Type)
		if err != nil {
			return nil, fmt.Errorf("bundle %q, channel %q: %w", b.Name, ch.Name, err)
		}
		if t == domain.DataTypeNil {
			return nil, fmt.Errorf("bundle %q, channel %q: type required", b.Name, ch.Name)
		}
		bundle.AddChannel(ch.Name, t, ch.Ports...)
	}
	return bundle, nil
}

func parseKind(kind string) (routing.RouteKind, error) {
	switch strings.ToLower(kind) {
	case "", "bus":
		return routing.KindBus, nil
	case "track":
		return routing.KindTrack, nil
	case "monitor":
		return routing.KindMonitor, nil
	default:
		return 0, fmt.Errorf("unknown route kind %q", kind)
	}
}
