package domain_test

import (
	"testing"

	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBundle_Channels(t *testing.T) {
	b := domain.NewBundle("Master", domain.DirOutput)
	b.AddChannel("L", domain.DataTypeAudio, "studio:Master/audio_out 1")
	b.AddChannel("R", domain.DataTypeAudio, "studio:Master/audio_out 2")

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "L", b.ChannelName(0))
	assert.Equal(t, []string{"studio:Master/audio_out 2"}, b.ChannelPorts(1))
	assert.Equal(t, domain.ChanCount{Audio: 2}, b.ChannelCount())
	assert.Equal(t, domain.DirOutput, b.Direction())
	assert.Equal(t, domain.ScopeNormal, b.Scope())
}

func TestBundle_SetPort(t *testing.T) {
	b := domain.NewBundle("Sync", domain.DirInput)
	b.AddChannel("MMC in", domain.DataTypeMIDI)
	require.Empty(t, b.ChannelPorts(0))

	b.SetPort(0, "system:midi_capture_1")
	assert.Equal(t, []string{"system:midi_capture_1"}, b.ChannelPorts(0))

	assert.Panics(t, func() { b.SetPort(5, "nope") })
}

func TestBundle_HasSamePorts(t *testing.T) {
	a := domain.NewBundle("a", domain.DirInput)
	a.AddChannel("1", domain.DataTypeAudio, "sys:in1")
	a.AddChannel("2", domain.DataTypeAudio, "sys:in2")

	// Same ports, different channel layout and order.
	b := domain.NewBundle("b", domain.DirInput)
	b.AddChannel("pair", domain.DataTypeAudio, "sys:in2", "sys:in1")

	c := domain.NewBundle("c", domain.DirInput)
	c.AddChannel("1", domain.DataTypeAudio, "sys:in1")
	c.AddChannel("3", domain.DataTypeAudio, "sys:in3")

	assert.True(t, a.HasSamePorts(b))
	assert.True(t, b.HasSamePorts(a))
	assert.False(t, a.HasSamePorts(c))

	// A strict subset is not "the same ports".
	d := domain.NewBundle("d", domain.DirInput)
	d.AddChannel("1", domain.DataTypeAudio, "sys:in1")
	assert.False(t, a.HasSamePorts(d))
}

func TestBundle_OffersPortAlone(t *testing.T) {
	b := domain.NewBundle("hw", domain.DirInput)
	b.AddChannel("mono", domain.DataTypeAudio, "system:capture_1")
	b.AddChannel("pair", domain.DataTypeAudio, "system:capture_2", "system:capture_3")

	assert.True(t, b.OffersPortAlone("system:capture_1"))
	assert.False(t, b.OffersPortAlone("system:capture_2"), "port shared with another in the same channel is not alone")
	assert.False(t, b.OffersPortAlone("system:capture_9"))
}

func TestBundle_ChangeSignals(t *testing.T) {
	b := domain.NewBundle("click", domain.DirOutput)

	var changes []domain.Change
	b.Changed.Connect(func(c domain.Change) { changes = append(changes, c) })

	b.AddChannel("click out", domain.DataTypeAudio)
	b.SetPort(0, "studio:click/audio_out 1")
	b.SetName("Click")
	b.SetName("Click") // no-op, must not emit

	assert.Equal(t, []domain.Change{
		domain.ConfigurationChanged,
		domain.PortsChanged,
		domain.NameChanged,
	}, changes)
}

func TestChanCount(t *testing.T) {
	var n domain.ChanCount
	n.Add(domain.DataTypeAudio, 2)
	n.Add(domain.DataTypeMIDI, 1)

	assert.Equal(t, 2, n.Get(domain.DataTypeAudio))
	assert.Equal(t, 1, n.Get(domain.DataTypeMIDI))
	assert.Equal(t, 3, n.Get(domain.DataTypeNil), "wildcard reads the total")
	assert.Equal(t, 3, n.Total())

	sum := n.Plus(domain.ChanCount{Audio: 1})
	assert.Equal(t, domain.ChanCount{Audio: 3, MIDI: 1}, sum)
}

func TestChanCount_GreaterThan(t *testing.T) {
	big := domain.ChanCount{Audio: 3}
	small := domain.ChanCount{Audio: 2}
	mixed := domain.ChanCount{Audio: 1, MIDI: 1}

	assert.True(t, big.GreaterThan(small))
	assert.False(t, small.GreaterThan(big))
	assert.False(t, big.GreaterThan(big), "equal counts never dominate")
	assert.False(t, big.GreaterThan(mixed), "no domination when a type is smaller")
}

func TestParseDataType(t *testing.T) {
	for in, want := range map[string]domain.DataType{
		"audio": domain.DataTypeAudio,
		"midi":  domain.DataTypeMIDI,
		"any":   domain.DataTypeNil,
		"":      domain.DataTypeNil,
	} {
		got, err := domain.ParseDataType(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := domain.ParseDataType("video")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	got, err := domain.ParseDirection("out")
	require.NoError(t, err)
	assert.Equal(t, domain.DirOutput, got)

	got, err = domain.ParseDirection("capture")
	require.NoError(t, err)
	assert.Equal(t, domain.DirInput, got)

	_, err = domain.ParseDirection("sideways")
	assert.Error(t, err)
}
