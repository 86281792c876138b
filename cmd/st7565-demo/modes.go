package main

import (
	"fmt"
	"image"
	"math"

	"github.com/fogleman/gg"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	psnet "github.com/shirou/gopsutil/v3/net"

	"github.com/BeatGlow/st7565"
	"github.com/BeatGlow/st7565/pixel"
)

// mode draws one frame into the display buffers.
type mode func(d *st7565.Display, frame int) error

var modes = map[string]mode{
	"test":    testPattern,
	"gauge":   gauge,
	"sysinfo": (&sysinfo{}).draw,
}

func testPattern(d *st7565.Display, frame int) error {
	w, h := d.Size()
	d.ClearActiveBuffer()

	// Box around the edge
	d.Rect(0, 0, w, h, pixel.Foreground)

	d.FillRoundRect(4, 4, 40, 14, 4, pixel.Foreground)
	d.Circle(w-16, 16, 10+frame%4, pixel.Foreground)
	d.FillTriangle(8, h-6, 24, h-22, 40, h-6, pixel.Foreground)
	d.Ellipse(w/2, h-14, 16, 6, pixel.Foreground)

	if err := d.DrawText(8, 7, "ST7565", pixel.Invert, pixel.Invert, 1); err != nil {
		return err
	}

	d.SetCursor(48, 24)
	d.SetTextColor(pixel.Foreground)
	if _, err := fmt.Fprintf(d, "frame %d", frame); err != nil {
		return err
	}

	// Walk the icons.
	level := frame * 10 % 110
	d.SetSignal(level)
	d.SetBattery(100 - level)
	d.SetPhone(st7565.PhoneIcon(frame % 3))
	d.SetPrinter(frame%2 == 0)
	d.SetCard(frame%3 == 0)
	d.SetLock(frame%4 == 0)
	d.SetUpload(frame%2 == 1)
	d.SetDownload(frame%2 == 0)
	return nil
}

// gauge renders an anti-aliased dial with gg and composites it onto the buffer.
func gauge(d *st7565.Display, frame int) error {
	w, h := d.Size()
	var (
		dc    = gg.NewContext(w, h)
		cx    = float64(w) / 2
		cy    = float64(h) - 4
		r     = math.Min(cx, cy) - 2
		value = float64(frame%21) / 20
	)
	dc.SetRGB(0, 0, 0)
	dc.Clear()
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(2)
	dc.DrawArc(cx, cy, r, gg.Radians(180), gg.Radians(360))
	dc.Stroke()
	for i := 0; i <= 10; i++ {
		a := gg.Radians(180 + float64(i)*18)
		dc.DrawLine(cx+math.Cos(a)*(r-6), cy+math.Sin(a)*(r-6), cx+math.Cos(a)*r, cy+math.Sin(a)*r)
	}
	dc.Stroke()

	a := gg.Radians(180 + value*180)
	dc.SetLineWidth(3)
	dc.DrawLine(cx, cy, cx+math.Cos(a)*(r-10), cy+math.Sin(a)*(r-10))
	dc.Stroke()
	dc.DrawCircle(cx, cy, 4)
	dc.Fill()

	d.ClearActiveBuffer()
	d.Image(d.Bounds(), dc.Image(), image.Point{})
	d.SetBattery(int(value * 100))
	return nil
}

// sysinfo shows host statistics as text and icons.
type sysinfo struct {
	sent, recv uint64
}

func (s *sysinfo) draw(d *st7565.Display, frame int) error {
	d.ClearActiveBuffer()
	d.SetCursor(0, 0)
	d.SetTextColors(pixel.Foreground, pixel.Background)

	load, err := cpu.Percent(0, false)
	if err != nil {
		return err
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return err
	}
	counters, err := psnet.IOCounters(false)
	if err != nil {
		return err
	}

	var cpuLoad float64
	if len(load) > 0 {
		cpuLoad = load[0]
	}
	fmt.Fprintf(d, "cpu %5.1f%%\n", cpuLoad)
	fmt.Fprintf(d, "mem %5.1f%%\n", vm.UsedPercent)
	fmt.Fprintf(d, "    %d MiB free\n", vm.Available>>20)

	if len(counters) > 0 {
		total := counters[0]
		fmt.Fprintf(d, "tx %s\nrx %s\n", bytesize(total.BytesSent), bytesize(total.BytesRecv))
		d.SetUpload(frame > 0 && total.BytesSent != s.sent)
		d.SetDownload(frame > 0 && total.BytesRecv != s.recv)
		s.sent, s.recv = total.BytesSent, total.BytesRecv
	}

	d.Rect(0, 48, 100, 8, pixel.Foreground)
	d.FillRect(0, 48, int(cpuLoad), 8, pixel.Foreground)

	d.SetSignal(int(cpuLoad))
	d.SetBattery(100 - int(vm.UsedPercent))
	return nil
}

func bytesize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
