package sandphys

// PaintCell sets a single world cell to material, going through
// World.SetCell so painting always participates in activation.
func (w *World) PaintCell(x, y int, material MaterialID) {
	w.SetCell(x, y, material)
}

// PaintLine rasterizes a line from (x1, y1) to (x2, y2) with Bresenham's
// algorithm and paints a disc of radius (thickness-1)/2 around every
// covered cell, so an odd thickness gives a stroke exactly thickness
// cells wide; a thickness of 1 or 2 (or below 1) paints the line itself.
func (w *World) PaintLine(x1, y1, x2, y2 int, material MaterialID, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	half := (thickness - 1) / 2

	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		w.paintBlob(x, y, half, material)
		if x == x2 && y == y2 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (w *World) paintBlob(cx, cy, half int, material MaterialID) {
	if half <= 0 {
		w.SetCell(cx, cy, material)
		return
	}
	for oy := -half; oy <= half; oy++ {
		for ox := -half; ox <= half; ox++ {
			if ox*ox+oy*oy <= half*half {
				w.SetCell(cx+ox, cy+oy, material)
			}
		}
	}
}

// PaintCircle fills a disc of radius r centered at (cx, cy) using the
// midpoint circle algorithm: each scanline's half-width is derived
// incrementally rather than by a per-pixel square root.
func (w *World) PaintCircle(cx, cy, r int, material MaterialID) {
	if r < 0 {
		return
	}
	x, y := r, 0
	err := 1 - r

	fillScanline := func(yOff, xMax int) {
		w.FillRect(cx-xMax, cy+yOff, 2*xMax+1, 1, material)
	}

	for x >= y {
		fillScanline(y, x)
		fillScanline(-y, x)
		fillScanline(x, y)
		fillScanline(-x, y)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillRect paints every cell in the w x h rectangle with top-left
// corner (x, y).
func (w *World) FillRect(x, y, width, height int, material MaterialID) {
	for yy := y; yy < y+height; yy++ {
		for xx := x; xx < x+width; xx++ {
			w.SetCell(xx, yy, material)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
