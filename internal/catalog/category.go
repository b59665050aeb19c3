// Dispatch categories for catalog entries
package catalog

// Category decides which argument shape a filter operation is called with.
type Category int

const (
	Passthrough Category = iota
	FaceTattoo
	FaceMaskMulti
	Animated
	FullImage
	SingleFaceGeneric
)

func (c Category) String() string {
	switch c {
	case Passthrough:
		return "passthrough"
	case FaceTattoo:
		return "face_tattoo"
	case FaceMaskMulti:
		return "face_mask_multi"
	case Animated:
		return "animated"
	case FullImage:
		return "full_image"
	case SingleFaceGeneric:
		return "single_face"
	default:
		return "unknown"
	}
}

// NeedsFace reports whether the category requires a face detection before the
// operation can run.
func (c Category) NeedsFace() bool {
	return c == FaceTattoo || c == FaceMaskMulti || c == SingleFaceGeneric
}

var faceTattooFilters = setOf("sam_reich")

var faceMaskFilters = setOf("sam_face_mask")

var animatedFilters = setOf(
	"extreme_closeup", "puzzle", "fast_zoom_in", "fast_zoom_out", "shake", "pulse", "spiral_zoom",
)

var fullImageFilters = setOf(
	// geometric
	"bulge", "stretch", "swirl", "fisheye", "pinch", "wave", "mirror",
	"twirl", "ripple", "sphere", "tunnel", "water_ripple", "radial_blur",
	"cylinder", "barrel", "pincushion", "whirlpool", "radial_zoom",
	"concave", "convex", "spiral", "radial_stretch", "radial_compress",
	"vertical_wave", "horizontal_wave", "skew_horizontal", "skew_vertical",
	"rotate_zoom", "radial_wave", "zoom_in", "zoom_out", "rotate",
	"rotate_45", "rotate_90", "flip_horizontal", "flip_vertical",
	"flip_both", "quad_mirror", "tile", "radial_tile",
	"zoom_blur", "melt", "kaleidoscope", "glitch", "double_vision",
	// colour and stylize
	"black_white", "sepia", "vintage", "negative", "posterize", "sketch",
	"cartoon", "anime", "thermal", "ice", "ocean", "plasma", "jet",
	"turbo", "inferno", "magma", "viridis", "cool", "hot", "spring",
	"summer", "autumn", "winter", "rainbow", "rainbow_shift", "acid_trip",
	"vhs", "retro", "cyberpunk", "glow", "solarize", "edge_detect",
	"halftone", "red_tint", "blue_tint", "green_tint", "neon_glow",
	"pixelate", "blur", "sharpen", "emboss",
)

// Classify maps a filter identifier to its dispatch category. The empty
// identifier is passthrough; identifiers outside every known set are treated
// as single-face filters.
func Classify(id string) Category {
	switch {
	case id == "":
		return Passthrough
	case faceTattooFilters[id]:
		return FaceTattoo
	case faceMaskFilters[id]:
		return FaceMaskMulti
	case animatedFilters[id]:
		return Animated
	case fullImageFilters[id]:
		return FullImage
	default:
		return SingleFaceGeneric
	}
}

func setOf(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
