package st7565

import "log"

// PhoneIcon selects one of the phone pictograms.
type PhoneIcon uint8

// Phone pictograms.
const (
	PhoneOff PhoneIcon = iota
	Phone1
	Phone2
)

// Icon row segment offsets.
const (
	iconPrinter  = 42
	iconCard     = 61
	iconLock     = 77
	iconUpload   = 108
	iconDownload = 122
)

var (
	phoneSegments = []int{2, 3, 4}

	// phoneStates are the lit phone segments per PhoneIcon.
	phoneStates = [...][]int{
		PhoneOff: nil,
		Phone1:   {2, 4},
		Phone2:   {3, 4},
	}
)

// levelIcon is a bar graph pictogram. Bars are lit when the level reaches their threshold.
type levelIcon struct {
	name string
	bars []levelBar
}

type levelBar struct {
	offset    int
	threshold int
}

var (
	signalIcon = levelIcon{
		name: "signal",
		bars: []levelBar{
			{20, 1}, {22, 1}, {24, 21}, {26, 51}, {28, 81}, {30, 100},
		},
	}
	batteryIcon = levelIcon{
		name: "battery",
		bars: []levelBar{
			{93, 1}, {105, 1}, {103, 21}, {101, 51}, {99, 81},
		},
	}
)

func (d *Display) setLevel(icon levelIcon, level int) {
	level = min(max(level, 0), 100)
	if debug {
		log.Printf("st7565: %s icon level %d", icon.name, level)
	}
	for _, bar := range icon.bars {
		d.icons.SetSegment(bar.offset, level >= bar.threshold)
	}
}

// SetPhone shows a phone pictogram, PhoneOff hides it.
func (d *Display) SetPhone(icon PhoneIcon) {
	if int(icon) >= len(phoneStates) {
		return
	}
	for _, offset := range phoneSegments {
		d.icons.SetSegment(offset, false)
	}
	for _, offset := range phoneStates[icon] {
		d.icons.SetSegment(offset, true)
	}
}

// SetSignal shows a signal strength bar graph for a level from 0 to 100.
func (d *Display) SetSignal(level int) {
	d.setLevel(signalIcon, level)
}

// SetBattery shows the battery charge for a level from 0 to 100, an empty battery hides the icon.
func (d *Display) SetBattery(level int) {
	d.setLevel(batteryIcon, level)
}

func (d *Display) SetPrinter(on bool)  { d.icons.SetSegment(iconPrinter, on) }
func (d *Display) SetCard(on bool)     { d.icons.SetSegment(iconCard, on) }
func (d *Display) SetLock(on bool)     { d.icons.SetSegment(iconLock, on) }
func (d *Display) SetUpload(on bool)   { d.icons.SetSegment(iconUpload, on) }
func (d *Display) SetDownload(on bool) { d.icons.SetSegment(iconDownload, on) }

// ClearIcons hides all icons.
func (d *Display) ClearIcons() {
	d.icons.Clear()
}

// Icons returns the icon row buffer.
func (d *Display) Icons() []byte {
	return d.icons.Pix
}
