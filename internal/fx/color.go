// Colour transforms
package fx

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gocv.io/x/gocv"
)

// Colour maps newer than the constants gocv exports.
const (
	colormapMagma    gocv.ColormapTypes = 13
	colormapInferno  gocv.ColormapTypes = 14
	colormapPlasma   gocv.ColormapTypes = 15
	colormapViridis  gocv.ColormapTypes = 16
	colormapTwilight gocv.ColormapTypes = 19
	colormapTurbo    gocv.ColormapTypes = 20
)

func (b *Bank) registerColor(r *Registry) {
	for id, cm := range map[string]gocv.ColormapTypes{
		"ocean":   gocv.ColormapOcean,
		"plasma":  colormapPlasma,
		"jet":     gocv.ColormapJet,
		"turbo":   colormapTurbo,
		"inferno": colormapInferno,
		"magma":   colormapMagma,
		"viridis": colormapViridis,
		"cool":    gocv.ColormapCool,
		"hot":     gocv.ColormapHot,
		"spring":  gocv.ColormapSpring,
		"summer":  gocv.ColormapSummer,
		"autumn":  gocv.ColormapAutumn,
		"winter":  gocv.ColormapWinter,
		"rainbow": gocv.ColormapRainbow,
	} {
		whole(r, id, colorMap(cm))
	}

	whole(r, "thermal", thermal)
	whole(r, "ice", ice)
	whole(r, "cyberpunk", cyberpunk)
	whole(r, "black_white", blackWhite)
	whole(r, "sepia", sepia)
	whole(r, "vintage", vintage)
	whole(r, "negative", negative)
	whole(r, "posterize", posterize(4))
	whole(r, "solarize", solarize)
	whole(r, "retro", retro)
	whole(r, "red_tint", tint(0))
	whole(r, "green_tint", tint(120))
	whole(r, "blue_tint", tint(220))
	whole(r, "rainbow_shift", hueShift(60, 1.0))
	whole(r, "acid_trip", acidTrip)
}

func colorMap(cm gocv.ColormapTypes) transform {
	return func(src gocv.Mat) (gocv.Mat, error) {
		out := gocv.NewMat()
		gocv.ApplyColorMap(src, &out, cm)
		return out, nil
	}
}

func thermal(src gocv.Mat) (gocv.Mat, error) {
	gray := toGray(src)
	defer gray.Close()
	gocv.GaussianBlur(gray, &gray, image2(5), 0, 0, gocv.BorderDefault)

	out := gocv.NewMat()
	gocv.ApplyColorMap(gray, &out, gocv.ColormapJet)
	return out, nil
}

func ice(src gocv.Mat) (gocv.Mat, error) {
	mapped := gocv.NewMat()
	defer mapped.Close()
	gocv.ApplyColorMap(src, &mapped, gocv.ColormapBone)

	cold := solid(src, hsvColor(200, 0.5, 1))
	defer cold.Close()
	return blend(mapped, 0.7, cold), nil
}

func cyberpunk(src gocv.Mat) (gocv.Mat, error) {
	mapped := gocv.NewMat()
	defer mapped.Close()
	gocv.ApplyColorMap(src, &mapped, colormapTwilight)
	return blend(mapped, 0.6, src), nil
}

func blackWhite(src gocv.Mat) (gocv.Mat, error) {
	gray := toGray(src)
	defer gray.Close()
	return toBGR(gray), nil
}

func sepia(src gocv.Mat) (gocv.Mat, error) {
	// rows produce B, G, R from B, G, R
	k := kernel(
		[]float32{0.131, 0.534, 0.272},
		[]float32{0.168, 0.686, 0.349},
		[]float32{0.189, 0.769, 0.393},
	)
	defer k.Close()

	out := gocv.NewMat()
	gocv.Transform(src, &out, k)
	return out, nil
}

func vintage(src gocv.Mat) (gocv.Mat, error) {
	toned, err := sepia(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer toned.Close()

	out := gocv.NewMat()
	toned.ConvertToWithParams(&out, gocv.MatTypeCV8UC3, 0.85, 25)
	return out, nil
}

func negative(src gocv.Mat) (gocv.Mat, error) {
	out := gocv.NewMat()
	gocv.BitwiseNot(src, &out)
	return out, nil
}

func posterize(levels int) transform {
	step := 256 / levels
	return func(src gocv.Mat) (gocv.Mat, error) {
		return applyLUT(src, func(v int) uint8 {
			return clamp8(float64(v/step*step + step/2))
		})
	}
}

func solarize(src gocv.Mat) (gocv.Mat, error) {
	return applyLUT(src, func(v int) uint8 {
		if v < 128 {
			return uint8(v)
		}
		return uint8(255 - v)
	})
}

func retro(src gocv.Mat) (gocv.Mat, error) {
	flat, err := posterize(6)(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer flat.Close()

	pink := gocv.NewMat()
	defer pink.Close()
	gocv.ApplyColorMap(flat, &pink, gocv.ColormapPink)
	return blend(flat, 0.7, pink), nil
}

func tint(hue float64) transform {
	c := hsvColor(hue, 0.9, 1)
	return func(src gocv.Mat) (gocv.Mat, error) {
		overlay := solid(src, c)
		defer overlay.Close()
		return blend(src, 0.6, overlay), nil
	}
}

// hueShift rotates hue by degrees and scales saturation.
func hueShift(degrees float64, saturation float64) transform {
	shift := int(degrees / 2) // OpenCV stores hue as 0-179
	return func(src gocv.Mat) (gocv.Mat, error) {
		hsv := gocv.NewMat()
		defer hsv.Close()
		gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)

		channels := gocv.Split(hsv)
		defer func() {
			for _, c := range channels {
				c.Close()
			}
		}()

		h, err := applyLUT(channels[0], func(v int) uint8 {
			if v >= 180 {
				return uint8(v)
			}
			return uint8((v + shift) % 180)
		})
		if err != nil {
			return gocv.NewMat(), err
		}
		channels[0].Close()
		channels[0] = h

		s, err := applyLUT(channels[1], func(v int) uint8 {
			return clamp8(float64(v) * saturation)
		})
		if err != nil {
			return gocv.NewMat(), err
		}
		channels[1].Close()
		channels[1] = s

		gocv.Merge(channels, &hsv)
		out := gocv.NewMat()
		gocv.CvtColor(hsv, &out, gocv.ColorHSVToBGR)
		return out, nil
	}
}

func acidTrip(src gocv.Mat) (gocv.Mat, error) {
	shifted, err := hueShift(150, 1.8)(src)
	if err != nil {
		return gocv.NewMat(), err
	}
	defer shifted.Close()

	mapped := gocv.NewMat()
	defer mapped.Close()
	gocv.ApplyColorMap(src, &mapped, gocv.ColormapHsv)
	return blend(shifted, 0.65, mapped), nil
}

// hsvColor converts a hue in degrees to an opaque RGBA colour.
func hsvColor(hue, sat, val float64) color.RGBA {
	r, g, b := colorful.Hsv(hue, sat, val).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
