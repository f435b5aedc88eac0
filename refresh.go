package dmd

import (
	"math/bits"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Refresh scans one phase of the display surface out to the panels.
//
// Each call lights a quarter of the rows: the shift registers receive the
// rows selected by the current phase, the data is latched, the row address is
// switched and OE is re-enabled at the current brightness. Four consecutive
// calls show the whole frame.
//
// Refresh never fails. Bus and pin errors are counted and logged at debug
// level. It does nothing once halted or when there is no valid display
// surface.
func (d *Dev) Refresh() {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()
	if d.halted.Load() {
		return
	}
	s := d.cur.Load().display
	if !s.Valid() {
		d.logger.Debug("dmd: no display surface, skipping refresh")
		return
	}
	d.buf = scan(d.buf[:0], s, d.phase)

	d.check("spi", d.c.Tx(d.buf, nil))
	// Blank the rows while the drivers switch to avoid ghosting.
	d.check("oe", d.pins.OE.Out(gpio.Low))
	d.check("latch", d.pins.Latch.Out(gpio.High))
	d.check("latch", d.pins.Latch.Out(gpio.Low))
	d.check("a", d.pins.A.Out(d.phase&1 != 0))
	d.check("b", d.pins.B.Out(d.phase&2 != 0))
	d.check("oe", d.pins.OE.PWM(duty(d.Brightness()), d.pwmFreq))
	d.phase = (d.phase + 1) & 3
}

// Phase returns the phase the next refresh will scan out.
func (d *Dev) Phase() int {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()
	return d.phase
}

func (d *Dev) check(op string, err error) {
	if err == nil {
		return
	}
	d.errs.Add(1)
	d.logger.Debug("dmd: refresh failed", "op", op, "phase", d.phase, "err", err)
}

// duty converts a brightness in [0, 255] to an OE duty cycle.
func duty(b int) gpio.Duty {
	return gpio.Duty(int64(gpio.DutyMax) * int64(b) / 255)
}

// scan appends the bytes of one phase of s to buf.
//
// Panel rows are processed a group of PanelHeight rows at a time. A group
// sends, for every byte column, the rows phase+12, phase+8, phase+4 and phase
// of the group. Panels in every other group are mounted upside down; their
// bytes are sent right to left with mirrored bits, starting from row
// 15-phase. The first group is upside down when the number of groups is
// even.
func scan(buf []byte, s *image1bit.Surface, phase int) []byte {
	pix := s.Pix
	stride := s.Stride
	stride4 := 4 * stride
	h := s.Rect.Dy()
	flip := (h/PanelHeight)%2 == 0
	for y := 0; y+PanelHeight <= h; y += PanelHeight {
		if !flip {
			r0 := stride * (y + phase)
			for x := 0; x < stride; x++ {
				buf = append(buf,
					pix[r0+3*stride4+x],
					pix[r0+2*stride4+x],
					pix[r0+stride4+x],
					pix[r0+x])
			}
		} else {
			r0 := stride*(y+PanelHeight-phase) - 1
			for x := 0; x < stride; x++ {
				buf = append(buf,
					bits.Reverse8(pix[r0-3*stride4-x]),
					bits.Reverse8(pix[r0-2*stride4-x]),
					bits.Reverse8(pix[r0-stride4-x]),
					bits.Reverse8(pix[r0-x]))
			}
		}
		flip = !flip
	}
	return buf
}
