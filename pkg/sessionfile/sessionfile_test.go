package sessionfile_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
	"github.com/aretw0/patchbay/pkg/routing"
	"github.com/aretw0/patchbay/pkg/sessionfile"
)

func TestLoadBuildsSession(t *testing.T) {
	s, err := sessionfile.Load(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "prog", s.ProgramName())
	require.Len(t, s.Routes(), 3)

	drums := s.Routes()[0]
	assert.Equal(t, "Drums", drums.Name())
	assert.Equal(t, routing.KindTrack, drums.Kind())
	color, ok := drums.Color()
	require.True(t, ok)
	assert.Equal(t, "#b91c1c", color)
	require.Len(t, drums.Processors(), 1)
	assert.NotNil(t, drums.Processors()[0].Sidechain())

	monitor := s.Routes()[2]
	assert.Equal(t, routing.KindMonitor, monitor.Kind())

	require.Len(t, s.Bundles(), 1)
	rig := s.Bundles()[0]
	assert.Equal(t, domain.ScopeUser, rig.Scope())
	assert.Equal(t, domain.DirInput, rig.Direction())
	assert.Equal(t, domain.ChanCount{Audio: 2}, rig.ChannelCount())

	p, ok := s.Ports().LookupPort("system:capture_1")
	require.True(t, ok)
	assert.True(t, p.Flags.IsPhysical())
	assert.Equal(t, "Mic 1", p.PrettyName)

	require.Len(t, s.IOPlugs(), 1)
	require.Len(t, s.Surfaces(), 1)
	require.Len(t, s.TransportMasters(), 1)

	special := s.Special()
	assert.NotNil(t, special.Click)
	assert.NotNil(t, special.Auditioner)
	assert.Equal(t, "LTC-out", special.LTCOut)
}

func TestLoadedSessionGathers(t *testing.T) {
	s, err := sessionfile.Load(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)

	l := matrix.NewPortGroupList()
	l.Gather(s, domain.DataTypeNil, domain.DirInput, false, false)

	var names []string
	for _, g := range l.Groups() {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{
		matrix.GroupBusses,
		matrix.GroupTracks,
		matrix.GroupSidechains,
		matrix.GroupIOPre,
		matrix.ProgramGroupName("prog"),
		matrix.GroupHardware,
	}, names)
}

func TestParse(t *testing.T) {
	s, err := sessionfile.Parse([]byte(`
program: demo
routes:
  - name: Vox
    kind: track
    audio_in: 1
`))
	require.NoError(t, err)
	assert.Equal(t, "demo", s.ProgramName())
	require.Len(t, s.Routes(), 1)
	assert.Equal(t, "Vox", s.Routes()[0].Name())
}

func TestParseDefaults(t *testing.T) {
	s, err := sessionfile.Parse([]byte(`routes: [{name: Aux}]`))
	require.NoError(t, err)
	assert.Equal(t, "patchbay", s.ProgramName())
	assert.Equal(t, routing.KindBus, s.Routes()[0].Kind())
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown kind":      `routes: [{name: X, kind: chair}]`,
		"bad direction":     `bundles: [{name: B, direction: sideways}]`,
		"channel sans type": `bundles: [{name: B, direction: input, channels: [{name: c}]}]`,
		"port sans type":    `ports: [{name: "x:1", direction: input}]`,
		"bad master type":   `transport_masters: [{name: M, type: smoke, port: p}]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := sessionfile.Parse([]byte(input))
			assert.Error(t, err)
		})
	}
}
