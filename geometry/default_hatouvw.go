package geometry

// NewStandardHAToUVW returns the textbook equatorial baseline-to-UVW
// transform (u, v, w in metres) for an array given as ECEF-like local
// (x, y, z) offsets, one triple per antenna. It is the default
// HAToUVWFunc the command-line tool wires in; any other projection can be
// substituted by implementing HAToUVWFunc directly.
func NewStandardHAToUVW(positions [][3]float64) HAToUVWFunc {
	return func(a1, a2 int, haSin, haCos, decSin, decCos float64) (u, v, w float64) {
		p1, p2 := positions[a1], positions[a2]
		dx := p2[0] - p1[0]
		dy := p2[1] - p1[1]
		dz := p2[2] - p1[2]

		u = haSin*dx + haCos*dy
		v = -decSin*haCos*dx + decSin*haSin*dy + decCos*dz
		w = decCos*haCos*dx - decCos*haSin*dy + decSin*dz
		return u, v, w
	}
}
