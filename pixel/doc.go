// Package pixel implements the 1-bit color model and packed image formats used by the ST7565 driver.
//
// The image types are compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, and additionally support the bit-wise write modes ([Color]) the panel graphics use.
package pixel
