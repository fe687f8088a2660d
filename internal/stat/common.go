package stat

import "fmt"

// Common stat axes.
const (
	HPRRaw = iota
	HPRPct
	MR // mana regen
	LS // life steal
	MS // mana steal
	Spd
	SDRaw
	SDPct

	CommonAxes
)

// CommonStat is the 8-axis vector of identifications checked by the second threshold stage.
type CommonStat [CommonAxes]int

func NewCommonStat(hprRaw, hprPct, mr, ls, ms, spd, sdRaw, sdPct int) CommonStat {
	return CommonStat{hprRaw, hprPct, mr, ls, ms, spd, sdRaw, sdPct}
}

func (c CommonStat) Add(o CommonStat) CommonStat {
	for i := range c {
		c[i] += o[i]
	}
	return c
}

func (c CommonStat) Max(o CommonStat) CommonStat {
	for i := range c {
		if o[i] > c[i] {
			c[i] = o[i]
		}
	}
	return c
}

func (c CommonStat) Min(o CommonStat) CommonStat {
	for i := range c {
		if o[i] < c[i] {
			c[i] = o[i]
		}
	}
	return c
}

func (c CommonStat) AnyLess(o CommonStat) bool {
	for i := range c {
		if c[i] < o[i] {
			return true
		}
	}
	return false
}

// HPR combines raw and percent health regen the way the hppeng builder does.
func (c CommonStat) HPR() int {
	raw := c[HPRRaw]
	abs := raw
	if abs < 0 {
		abs = -abs
	}
	return raw + c[HPRPct]*abs/100
}

func (c CommonStat) String() string {
	return fmt.Sprintf("hpr_raw:%d\thpr_pct:%d\tmr:%d\tls:%d\tms:%d\tspd:%d\tsd_raw:%d\tsd_pct:%d",
		c[0], c[1], c[2], c[3], c[4], c[5], c[6], c[7])
}
