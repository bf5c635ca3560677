package sysinfo

import (
	"fmt"
	"strings"
	"time"

	"github.com/distatus/battery"
	"github.com/rs/zerolog/log"

	"github.com/nhle/dashboard/internal/model"
)

// Battery reads the first battery the host reports. Hosts without one, or
// whose battery cannot be read, report Supported=false.
func (p *Probe) Battery() model.BatteryStatus {
	unsupported := model.BatteryStatus{
		TimeRemaining: model.NotAvailable,
		Health:        model.NotAvailable,
		StatusText:    model.NotAvailable,
	}

	batteries, err := p.Host.Batteries()
	bat := firstReadable(batteries)
	if bat == nil {
		if err != nil {
			log.Debug().Err(err).Msg("battery probe unavailable")
		}
		return unsupported
	}

	state := strings.ToLower(bat.State.String())
	charging := state == "charging" || state == "full"

	b := model.BatteryStatus{
		Supported:     true,
		Level:         clampPercent(bat.Current / bat.Full * 100),
		Charging:      charging,
		TimeRemaining: timeRemaining(bat, charging),
		Health:        health(bat),
		StatusText:    "On Battery",
	}
	if charging {
		b.StatusText = "Charging"
	}

	return b
}

// firstReadable skips batteries the library could not read. A partial read
// without a full capacity cannot yield a level.
func firstReadable(batteries []*battery.Battery) *battery.Battery {
	for _, b := range batteries {
		if b != nil && b.Full > 0 {
			return b
		}
	}
	return nil
}

// timeRemaining estimates time to full or empty from the capacity (mWh)
// and charge rate (mW).
func timeRemaining(b *battery.Battery, charging bool) string {
	if b.ChargeRate <= 0 {
		return model.Unknown
	}

	var hours float64
	if charging {
		hours = (b.Full - b.Current) / b.ChargeRate
	} else {
		hours = b.Current / b.ChargeRate
	}
	if hours < 0 {
		return model.Unknown
	}

	d := time.Duration(hours * float64(time.Hour))
	suffix := "remaining"
	if charging {
		suffix = "to full"
	}
	return FormatRemaining(d, suffix)
}

// health grades the remaining full capacity against the design capacity.
func health(b *battery.Battery) string {
	if b.Design <= 0 {
		return "Good"
	}
	switch wear := b.Full / b.Design; {
	case wear >= 0.8:
		return "Good"
	case wear >= 0.5:
		return "Fair"
	default:
		return "Poor"
	}
}

// FormatRemaining renders d as "Xh Ym <suffix>".
func FormatRemaining(d time.Duration, suffix string) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm %s", h, m, suffix)
}

func clampPercent(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return int(v + 0.5)
	}
}
