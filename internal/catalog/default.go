package catalog

// Default returns the built-in filter catalog. Position 0 is the tattoo filter
// on quick key 's', position 1 is the passthrough entry (display number 0).
func Default() *Catalog {
	c, err := New(defaultEntries(), map[rune]int{'s': 0, 'S': 0})
	if err != nil {
		panic(err)
	}
	return c
}

func defaultEntries() []Entry {
	return []Entry{
		{ID: "sam_reich", Name: "SAM REICH Tattoo"},
		{ID: "", Name: "None (Original)"},
		{ID: "extreme_closeup", Name: "Extreme Close-Up"},
		{ID: "puzzle", Name: "Puzzle"},
		{ID: "fast_zoom_in", Name: "Fast Zoom In"},
		{ID: "fast_zoom_out", Name: "Fast Zoom Out"},
		{ID: "shake", Name: "Shake"},
		{ID: "pulse", Name: "Pulse"},
		{ID: "spiral_zoom", Name: "Spiral Zoom"},
		{ID: "sam_face_mask", Name: "Sam Face Mask"},
		{ID: "bulge", Name: "Bulge"},
		{ID: "stretch", Name: "Stretch"},
		{ID: "swirl", Name: "Swirl"},
		{ID: "fisheye", Name: "Fisheye"},
		{ID: "pinch", Name: "Pinch"},
		{ID: "wave", Name: "Wave"},
		{ID: "mirror", Name: "Mirror"},
		{ID: "twirl", Name: "Twirl"},
		{ID: "ripple", Name: "Ripple"},
		{ID: "sphere", Name: "Sphere"},
		{ID: "tunnel", Name: "Tunnel"},
		{ID: "water_ripple", Name: "Water Ripple"},
		{ID: "radial_blur", Name: "Radial Blur"},
		{ID: "cylinder", Name: "Cylinder"},
		{ID: "barrel", Name: "Barrel"},
		{ID: "pincushion", Name: "Pincushion"},
		{ID: "whirlpool", Name: "Whirlpool"},
		{ID: "radial_zoom", Name: "Radial Zoom"},
		{ID: "concave", Name: "Concave"},
		{ID: "convex", Name: "Convex"},
		{ID: "spiral", Name: "Spiral"},
		{ID: "radial_stretch", Name: "Radial Stretch"},
		{ID: "radial_compress", Name: "Radial Compress"},
		{ID: "vertical_wave", Name: "Vertical Wave"},
		{ID: "horizontal_wave", Name: "Horizontal Wave"},
		{ID: "skew_horizontal", Name: "Skew Horizontal"},
		{ID: "skew_vertical", Name: "Skew Vertical"},
		{ID: "rotate_zoom", Name: "Rotate Zoom"},
		{ID: "radial_wave", Name: "Radial Wave"},
		{ID: "zoom_in", Name: "Zoom In"},
		{ID: "zoom_out", Name: "Zoom Out"},
		{ID: "rotate", Name: "Rotate"},
		{ID: "rotate_45", Name: "Rotate 45°"},
		{ID: "rotate_90", Name: "Rotate 90°"},
		{ID: "flip_horizontal", Name: "Flip Horizontal"},
		{ID: "flip_vertical", Name: "Flip Vertical"},
		{ID: "flip_both", Name: "Flip Both"},
		{ID: "quad_mirror", Name: "Quad Mirror"},
		{ID: "tile", Name: "Tile"},
		{ID: "radial_tile", Name: "Radial Tile"},
		{ID: "zoom_blur", Name: "Zoom Blur"},
		{ID: "melt", Name: "Melt"},
		{ID: "kaleidoscope", Name: "Kaleidoscope"},
		{ID: "glitch", Name: "Glitch"},
		{ID: "double_vision", Name: "Double Vision"},
		{ID: "black_white", Name: "Black & White"},
		{ID: "sepia", Name: "Sepia"},
		{ID: "vintage", Name: "Vintage"},
		{ID: "neon_glow", Name: "Neon Glow"},
		{ID: "pixelate", Name: "Pixelate"},
		{ID: "blur", Name: "Blur"},
		{ID: "sharpen", Name: "Sharpen"},
		{ID: "emboss", Name: "Emboss"},
		{ID: "red_tint", Name: "Red Tint"},
		{ID: "blue_tint", Name: "Blue Tint"},
		{ID: "green_tint", Name: "Green Tint"},
		{ID: "rainbow", Name: "Rainbow"},
		{ID: "negative", Name: "Negative"},
		{ID: "posterize", Name: "Posterize"},
		{ID: "sketch", Name: "Sketch"},
		{ID: "cartoon", Name: "Cartoon"},
		{ID: "thermal", Name: "Thermal"},
		{ID: "ice", Name: "Ice"},
		{ID: "ocean", Name: "Ocean"},
		{ID: "plasma", Name: "Plasma"},
		{ID: "jet", Name: "Jet"},
		{ID: "turbo", Name: "Turbo"},
		{ID: "inferno", Name: "Inferno"},
		{ID: "magma", Name: "Magma"},
		{ID: "viridis", Name: "Viridis"},
		{ID: "cool", Name: "Cool"},
		{ID: "hot", Name: "Hot"},
		{ID: "spring", Name: "Spring"},
		{ID: "summer", Name: "Summer"},
		{ID: "autumn", Name: "Autumn"},
		{ID: "winter", Name: "Winter"},
		{ID: "rainbow_shift", Name: "Rainbow Shift"},
		{ID: "acid_trip", Name: "Acid Trip"},
		// repeated on purpose, they are separate slots in the cycle
		{ID: "double_vision", Name: "Double Vision"},
		{ID: "zoom_blur", Name: "Zoom Blur"},
		{ID: "melt", Name: "Melt"},
		{ID: "kaleidoscope", Name: "Kaleidoscope"},
		{ID: "glitch", Name: "Glitch"},
		{ID: "vhs", Name: "VHS"},
		{ID: "retro", Name: "Retro"},
		{ID: "cyberpunk", Name: "Cyberpunk"},
		{ID: "anime", Name: "Anime"},
		{ID: "glow", Name: "Glow"},
		{ID: "solarize", Name: "Solarize"},
		{ID: "edge_detect", Name: "Edge Detect"},
		{ID: "halftone", Name: "Halftone"},
		{ID: "face_pixelate", Name: "Face Pixelate"},
	}
}
