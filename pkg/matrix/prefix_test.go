package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSeparator(t *testing.T) {
	t.Run("colon when every name carries one", func(t *testing.T) {
		assert.Equal(t, byte(':'), detectSeparator([]string{"sys:in1", "sys:in2", "ext:in1"}))
	})

	t.Run("slash wins over colon", func(t *testing.T) {
		assert.Equal(t, byte('/'), detectSeparator([]string{"a/x:1", "b/y:2"}))
	})

	t.Run("none when any name lacks it", func(t *testing.T) {
		assert.Equal(t, byte(0), detectSeparator([]string{"sys:in1", "plain"}))
	})
}

func TestPrefixThrough(t *testing.T) {
	assert.Equal(t, "sys:", prefixThrough("sys:in1", ':'))
	assert.Equal(t, "", prefixThrough("plain", ':'))
}

func TestSplitRuns(t *testing.T) {
	runs := splitRuns([]string{"sys:in1", "sys:in2", "ext:in1"}, ':')
	assert.Equal(t, [][]string{
		{"sys:in1", "sys:in2"},
		{"ext:in1"},
	}, runs)
}

func TestSplitRunsSingleRun(t *testing.T) {
	runs := splitRuns([]string{"sys:a", "sys:b", "sys:c"}, ':')
	assert.Equal(t, [][]string{{"sys:a", "sys:b", "sys:c"}}, runs)
}

func TestCommonPrefixBefore(t *testing.T) {
	t.Run("shared prefix", func(t *testing.T) {
		assert.Equal(t, "sys:", commonPrefixBefore([]string{"sys:in1", "sys:in2"}, ':'))
	})

	t.Run("divergent names share nothing", func(t *testing.T) {
		assert.Equal(t, "", commonPrefixBefore([]string{"sys:in1", "ext:in1"}, ':'))
	})

	t.Run("first name without separator", func(t *testing.T) {
		assert.Equal(t, "", commonPrefixBefore([]string{"plain", "sys:in1"}, ':'))
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Equal(t, "", commonPrefixBefore(nil, ':'))
	})
}

func TestCommonPrefix(t *testing.T) {
	assert.Equal(t, "card/", commonPrefix([]string{"card/in1", "card/in2"}))
	assert.Equal(t, "sys:", commonPrefix([]string{"sys:in1", "sys:in2"}))
	assert.Equal(t, "", commonPrefix([]string{"sys:in1", "ext:in1"}))
}
