package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/dashboard/internal/model"
	"github.com/nhle/dashboard/internal/sysinfo"
)

func TestApply(t *testing.T) {
	t.Cleanup(func() { Apply(model.DefaultTheme) })

	Apply(model.ThemeDark)
	assert.Equal(t, model.ThemeDark, Current())
	assert.Equal(t, Dark, Colors())
	assert.Equal(t, Dark.Accent, HeaderStyle.GetBackground())

	Apply("unknown")
	assert.Equal(t, model.ThemeLight, Current())
	assert.Equal(t, Light.Accent, HeaderStyle.GetBackground())
}

func TestBandColor(t *testing.T) {
	t.Cleanup(func() { Apply(model.DefaultTheme) })
	Apply(model.ThemeLight)

	assert.Equal(t, Light.Green, BandColor(sysinfo.LoadBand(20)))
	assert.Equal(t, Light.Orange, BandColor(sysinfo.LoadBand(60)))
	assert.Equal(t, Light.Red, BandColor(sysinfo.LoadBand(90)))
	assert.Equal(t, Light.Red, BandColor(sysinfo.BatteryBand(10)))
}
