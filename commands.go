package st7565

// Controller commands.
const (
	cmdDisplayOff       = 0xAE
	cmdDisplayOn        = 0xAF
	cmdSetStartLine     = 0x40
	cmdSetPage          = 0xB0
	cmdSetColumnUpper   = 0x10
	cmdSetColumnLower   = 0x00
	cmdSetADCNormal     = 0xA0
	cmdSetADCReverse    = 0xA1
	cmdSetDisplayNormal = 0xA6
	cmdSetDisplayInvert = 0xA7
	cmdSetAllPtsNormal  = 0xA4
	cmdSetAllPtsOn      = 0xA5
	cmdSetBias9         = 0xA2
	cmdSetBias7         = 0xA3
	cmdRMW              = 0xE0
	cmdRMWClear         = 0xEE
	cmdInternalReset    = 0xE2
	cmdSetCOMNormal     = 0xC0
	cmdSetCOMReverse    = 0xC8
	cmdSetPowerControl  = 0x28
	cmdSetResistorRatio = 0x20
	cmdSetVolumeFirst   = 0x81
	cmdSetStaticOff     = 0xAC
	cmdSetStaticOn      = 0xAD
	cmdSetBoosterFirst  = 0xF8
	cmdSetBooster234    = 0x00
	cmdSetBooster5      = 0x01
	cmdSetBooster6      = 0x03
	cmdNop              = 0xE3
)

// Power control bits, added to cmdSetPowerControl.
const (
	powerVoltageFollower  = 0x01
	powerVoltageRegulator = 0x02
	powerVoltageConverter = 0x04
)

const (
	defaultContrast       = 0x20
	defaultResistorRatio  = 0x04
	defaultAddressControl = 0x04
	contrastMask          = 0x3F
	libVersion            = 182
)
