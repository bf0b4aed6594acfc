package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPointLightOptions(t *testing.T) {
	l := NewPointLight(WithColor(0xffffff), WithIntensity(50), WithPosition(-1, 5, 4))

	assert.Equal(t, [3]float32{1, 1, 1}, l.Color())
	assert.Equal(t, float32(50), l.Intensity())
	assert.Equal(t, [3]float32{-1, 5, 4}, l.Position())
	assert.Equal(t, float32(2), l.Decay())
	assert.Equal(t, float32(0), l.Distance())
	assert.True(t, l.Enabled())
}

func TestSetDistanceRejectsNegative(t *testing.T) {
	l := NewPointLight()
	l.SetDistance(-3)
	assert.Equal(t, float32(0), l.Distance())
}

func TestGPULightsUniformMarshal(t *testing.T) {
	lights := make([]Light, 0, MaxGPULights+1)
	for i := range MaxGPULights + 1 {
		lights = append(lights, NewPointLight(WithIntensity(float32(i+1))))
	}
	lights[1].SetEnabled(false)

	u := NewGPULightsUniform(lights)
	assert.Equal(t, uint32(MaxGPULights), u.Count)

	buf := u.Marshal()
	assert.Len(t, buf, 16+48*MaxGPULights)
	assert.Equal(t, u.Size(), len(buf))
	assert.Equal(t, uint32(MaxGPULights), binary.LittleEndian.Uint32(buf[0:4]))

	// second slot: intensity 2, disabled
	slot := buf[16+48 : 16+96]
	assert.Equal(t, float32(2), math.Float32frombits(binary.LittleEndian.Uint32(slot[12:16])))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(slot[36:40]))
}
