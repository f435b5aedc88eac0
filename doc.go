// Package dmd drives chains of monochrome 32x16 DMD LED panels (often sold
// as P10 modules) over SPI.
//
// The panels have no frame memory of their own. They are multiplexed 1:4: a
// refresh shifts one quarter of the rows into the column drivers, latches
// them and selects the row group with the A and B address lines. The driver
// keeps a 1-bit frame buffer and has to refresh continuously, four times per
// visible frame, for the image to appear steady.
//
// # Hardware Connection
//
//	Panel Pin  → System Pin
//	GND        → GND
//	R (data)   → SPI Data (MOSI)
//	CLK        → SPI Clock (SCLK)
//	SCLK/LAT   → GPIO (latch)
//	A          → GPIO (row address bit 0)
//	B          → GPIO (row address bit 1)
//	OE         → GPIO with PWM (output enable, brightness)
//
// Panels are chained through their output connector. A chain of WidthPanels
// by HeightPanels modules is addressed as a single image.
//
// # Basic Usage
//
//	dev, _ := dmd.NewSPI(spiBus, dmd.Pins{
//		A:     gpioreg.ByName("GPIO23"),
//		B:     gpioreg.ByName("GPIO24"),
//		Latch: gpioreg.ByName("GPIO25"),
//		OE:    gpioreg.ByName("GPIO18"),
//	}, &dmd.Opts{WidthPanels: 2})
//	defer dev.Halt()
//
//	gfx.Rect(dev.Surface(), 0, 0, 63, 15, image1bit.Lit, image1bit.Transparent)
//	font.NewRenderer(myFont).DrawString(dev.Surface(), 2, 4, "Hello")
//
//	dev.Start()
//	dev.Run(ctx)
//
// # Refresh Timing
//
// The refresh timer only flags that a refresh is due (Tick); it never touches
// the bus. The refresh runs in Poll or Run, on the caller's goroutine, so at
// most one refresh is ever in flight. With the default 100µs period a full
// frame is shown every 400µs.
//
// # Double Buffering
//
// EnableDoubleBuffering adds a back buffer. Drawing then goes to Surface()
// while Visible() is scanned out; Swap and SwapAndCopy exchange the two
// atomically with respect to refresh.
//
// # Compatibility
//
// Dev implements display.Drawer from periph.io and drivers.Displayer from
// TinyGo, so it can be used with image/draw, golang.org/x/image/font and
// tinyfont.
package dmd
