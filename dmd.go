package dmd

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/dmd/image1bit"
)

// Dimensions of a single panel in pixels.
const (
	PanelWidth  = 32
	PanelHeight = 16
)

// ErrHalted is returned by operations on a halted device.
var ErrHalted = errors.New("dmd: halted")

// Pins are the control lines of the panel chain.
type Pins struct {
	A     gpio.PinOut // Row address, low bit
	B     gpio.PinOut // Row address, high bit
	Latch gpio.PinOut // Latches the shifted data into the row drivers
	OE    gpio.PinOut // Output enable, driven with PWM for brightness
}

// Opts is the configuration for a panel chain.
type Opts struct {
	// Number of panels in the chain (default: 1x1).
	WidthPanels  int
	HeightPanels int

	Hz      physic.Frequency // SPI clock (default: 10MHz)
	Period  time.Duration    // Refresh period (default: 100µs)
	PWMFreq physic.Frequency // OE PWM frequency (default: 16384Hz)

	// Brightness is the initial brightness between 1 and 255. 0 selects 255.
	Brightness int

	// DoubleBuffer enables double buffering at construction.
	DoubleBuffer bool

	// MemoryLimit caps the bytes used by frame buffers. 0 means no limit.
	MemoryLimit int

	Clock  clockwork.Clock // Timer source (default: real clock)
	Logger *slog.Logger    // Default: slog.Default()
}

// roles labels which surface is drawn into and which is scanned out.
//
// A roles value is never modified once published, so a refresh that loaded
// it sees a consistent pair for the whole cycle.
type roles struct {
	write   *image1bit.Surface
	display *image1bit.Surface
}

// Dev is a handle to a chain of DMD panels.
type Dev struct {
	// Communication
	c    conn.Conn
	pins Pins

	// Display geometry
	rect image.Rectangle

	// Configuration
	period      time.Duration
	pwmFreq     physic.Frequency
	memoryLimit int
	clock       clockwork.Clock
	logger      *slog.Logger

	// Frame buffers. mu serializes role changes; refresh only loads cur.
	mu    sync.Mutex
	slots [2]*image1bit.Surface
	cur   atomic.Pointer[roles]

	// Refresh state, guarded by refreshMu.
	refreshMu sync.Mutex
	phase     int
	buf       []byte

	brightness atomic.Int32
	errs       atomic.Uint64

	// Timer
	pending chan struct{}
	timerMu sync.Mutex
	ticker  clockwork.Ticker
	stop    chan struct{}
	done    chan struct{}

	// State
	halted   atomic.Bool
	haltOnce sync.Once
	haltc    chan struct{}
}

// NewSPI returns a Dev driving a chain of panels over SPI.
//
// The SPI port is configured for Mode0 with 8-bit words. The four control
// pins are driven low; the display stays dark until the first refresh.
//
// opts can be nil to use defaults (a single 32x16 panel).
func NewSPI(p spi.Port, pins Pins, opts *Opts) (*Dev, error) {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.WidthPanels < 0 || o.HeightPanels < 0 {
		return nil, errors.New("dmd: panel counts must not be negative")
	}
	if o.Brightness < 0 || o.Brightness > 255 {
		return nil, errors.New("dmd: brightness must be between 0 and 255")
	}
	if o.Period < 0 {
		return nil, errors.New("dmd: period must not be negative")
	}
	if pins.A == nil || pins.B == nil || pins.Latch == nil || pins.OE == nil {
		return nil, errors.New("dmd: A, B, Latch and OE pins are required")
	}
	if o.WidthPanels == 0 {
		o.WidthPanels = 1
	}
	if o.HeightPanels == 0 {
		o.HeightPanels = 1
	}
	if o.Hz == 0 {
		o.Hz = 10 * physic.MegaHertz
	}
	if o.Period == 0 {
		o.Period = 100 * time.Microsecond
	}
	if o.PWMFreq == 0 {
		o.PWMFreq = 16384 * physic.Hertz
	}
	if o.Brightness == 0 {
		o.Brightness = 255
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	w, h := o.WidthPanels*PanelWidth, o.HeightPanels*PanelHeight
	if image1bit.Size(w, h) < 0 {
		return nil, fmt.Errorf("dmd: %dx%d panels are too large", o.WidthPanels, o.HeightPanels)
	}

	c, err := p.Connect(o.Hz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("dmd: %w", err)
	}

	d := &Dev{
		c:           c,
		pins:        pins,
		rect:        image.Rect(0, 0, w, h),
		period:      o.Period,
		pwmFreq:     o.PWMFreq,
		memoryLimit: o.MemoryLimit,
		clock:       o.Clock,
		logger:      o.Logger,
		pending:     make(chan struct{}, 1),
		haltc:       make(chan struct{}),
	}
	d.brightness.Store(int32(o.Brightness))

	if err := d.init(); err != nil {
		return nil, err
	}

	d.slots[0] = d.allocate(0)
	if !d.slots[0].Valid() {
		d.logger.Warn("dmd: cannot allocate frame buffer", "size", d.rect.Size(), "limit", d.memoryLimit)
	}
	d.cur.Store(&roles{write: d.slots[0], display: d.slots[0]})
	if o.DoubleBuffer {
		d.EnableDoubleBuffering()
	}
	return d, nil
}

// init drives every control line low.
func (d *Dev) init() error {
	for _, p := range []struct {
		name string
		pin  gpio.PinOut
	}{
		{"A", d.pins.A},
		{"B", d.pins.B},
		{"Latch", d.pins.Latch},
		{"OE", d.pins.OE},
	} {
		if err := p.pin.Out(gpio.Low); err != nil {
			return fmt.Errorf("dmd: failed to pull %s low: %w", p.name, err)
		}
	}
	return nil
}

// allocate returns a blank surface the size of the chain, or an invalid
// surface when it would not fit in the memory limit next to used bytes.
func (d *Dev) allocate(used int) *image1bit.Surface {
	size := image1bit.Size(d.rect.Dx(), d.rect.Dy())
	if size < 0 || (d.memoryLimit > 0 && used+size > d.memoryLimit) {
		return &image1bit.Surface{}
	}
	return image1bit.New(d.rect.Dx(), d.rect.Dy())
}

// EnableDoubleBuffering allocates a back buffer and makes it the write
// surface. The current write surface becomes the display surface, so the
// visible image is kept.
//
// It returns false, staying single buffered, when the back buffer cannot be
// allocated.
func (d *Dev) EnableDoubleBuffering() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slots[1] != nil {
		return true
	}
	used := len(d.slots[0].Pix)
	s := d.allocate(used)
	if !s.Valid() {
		d.logger.Warn("dmd: cannot allocate back buffer, staying single buffered", "used", used, "limit", d.memoryLimit)
		return false
	}
	d.slots[1] = s
	d.cur.Store(&roles{write: s, display: d.slots[0]})
	return true
}

// DisableDoubleBuffering makes the first buffer both the write and the
// display surface and releases the back buffer.
func (d *Dev) DisableDoubleBuffering() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.slots[1] == nil {
		return
	}
	d.cur.Store(&roles{write: d.slots[0], display: d.slots[0]})
	d.slots[1] = nil
}

// DoubleBuffered reports whether drawing and scan-out use different surfaces.
func (d *Dev) DoubleBuffered() bool {
	r := d.cur.Load()
	return r.write != r.display
}

// Swap exchanges the write and display surfaces. It does nothing when single
// buffered.
func (d *Dev) Swap() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.swap()
}

// SwapAndCopy swaps the surfaces, then copies the new display surface over
// the new write surface so drawing continues from the visible image.
func (d *Dev) SwapAndCopy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if r := d.swap(); r != nil {
		r.write.CopyFrom(r.display)
	}
}

// swap publishes the exchanged roles and returns them, or nil when single
// buffered. The caller must hold mu.
func (d *Dev) swap() *roles {
	if d.slots[1] == nil {
		return nil
	}
	old := d.cur.Load()
	r := &roles{write: old.display, display: old.write}
	d.cur.Store(r)
	return r
}

// Surface returns the surface drawing operations should target.
//
// The returned surface stays valid after a swap but may then be the one
// being scanned out; call Surface again after every swap.
func (d *Dev) Surface() *image1bit.Surface {
	return d.cur.Load().write
}

// Visible returns the surface currently scanned out.
func (d *Dev) Visible() *image1bit.Surface {
	return d.cur.Load().display
}

// SetBrightness sets the OE duty cycle used from the next refresh on. Values
// are clamped to [0, 255].
func (d *Dev) SetBrightness(v int) {
	if v < 0 {
		v = 0
	} else if v > 255 {
		v = 255
	}
	d.brightness.Store(int32(v))
}

// Brightness returns the current brightness.
func (d *Dev) Brightness() int {
	return int(d.brightness.Load())
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.ColorModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It draws src into the write surface. The image shows up on the next
// refresh, or after the next swap when double buffered.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted.Load() {
		return ErrHalted
	}
	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}
	s := d.Surface()
	// Fast path: a full frame in the native format.
	if img, ok := src.(*image1bit.Surface); ok && dst == d.rect && sp == (image.Point{}) {
		if s.CopyFrom(img) {
			return nil
		}
	}
	draw.Draw(s, dst, src, sp, draw.Src)
	return nil
}

// Write copies a raw frame into the write surface.
//
// The data is the packed 1-bit format of image1bit.Surface: rows of
// ceil(width/8) bytes, leftmost pixel in the most significant bit, a cleared
// bit lit. It must be exactly one frame long.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted.Load() {
		return 0, ErrHalted
	}
	s := d.Surface()
	if !s.Valid() {
		return 0, errors.New("dmd: no frame buffer")
	}
	if len(pixels) != len(s.Pix) {
		return 0, errors.New("dmd: invalid buffer size")
	}
	copy(s.Pix, pixels)
	return len(pixels), nil
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return int16(d.rect.Dx()), int16(d.rect.Dy())
}

// SetPixel implements drivers.Displayer. Any color other than black lights
// the pixel.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	v := image1bit.Dark
	if c.R != 0 || c.G != 0 || c.B != 0 {
		v = image1bit.Lit
	}
	d.Surface().SetPixel(int(x), int(y), v)
}

// Display implements drivers.Displayer.
//
// When double buffered it shows the write surface with SwapAndCopy. Single
// buffered, the pixels are already visible and it does nothing.
func (d *Dev) Display() error {
	if d.halted.Load() {
		return ErrHalted
	}
	d.SwapAndCopy()
	return nil
}

// Halt stops the refresh timer and blanks the panels.
//
// After calling Halt, drawing through Draw and Display and restarting the
// timer fail with ErrHalted.
func (d *Dev) Halt() error {
	d.haltOnce.Do(func() {
		d.halted.Store(true)
		close(d.haltc)
	})
	d.Stop()
	// Wait for an in-flight refresh before blanking.
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()
	if err := d.pins.OE.Out(gpio.Low); err != nil {
		return fmt.Errorf("dmd: failed to pull OE low: %w", err)
	}
	return nil
}

// Errors returns the number of bus and pin errors seen while refreshing.
func (d *Dev) Errors() uint64 {
	return d.errs.Load()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("dmd.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
