package convert

import "github.com/AnyUserName/img2fbm/internal/params"

// Offset returns the shift (dx, dy) that maps a canvas pixel onto the
// resized source of size imgW x imgH. Unless the source is anchored to
// an edge it is centred, with an odd leftover pixel going to the start.
func Offset(imgW, imgH, width, height int, a params.Alignment) (dx, dy int) {
	dx = alignAxis(imgW, width, a == params.AlignLeft, a == params.AlignRight)
	dy = alignAxis(imgH, height, a == params.AlignTop, a == params.AlignBottom)
	return dx, dy
}

func alignAxis(size, canvas int, start, end bool) int {
	if start {
		return 0
	}
	d := size - canvas
	if !end {
		d = d/2 + d%2
	}
	return d
}

// edges bound the part of the canvas the background policy treats as
// leading (x < left, y < top) and trailing (x >= right, y >= bottom).
type edges struct {
	left, top, right, bottom int
}

func outsideEdges(imgW, imgH, width, height int) edges {
	difX := width - imgW
	difY := height - imgH
	return edges{
		left:   difX/2 + difX%2,
		top:    difY/2 + difY%2,
		right:  width - difX/2,
		bottom: height - difY/2,
	}
}
