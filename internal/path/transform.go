package path

// Mirror отражает траекторию относительно вертикальной оси: x меняет знак
// у записей Move, остальные записи копируются на свои места.
func Mirror(p Path) Path {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		if e.IsMove() {
			e.Location = e.Location.MirrorX()
		}
		out[i] = e
	}
	return Path{entries: out}
}

// Translate сдвигает все записи Move на (dx, dy).
// Результат не разделяет память с исходной траекторией.
func Translate(p Path, dx, dy float64) Path {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		if e.IsMove() {
			e.Location.X += dx
			e.Location.Y += dy
		}
		out[i] = e
	}
	return Path{entries: out}
}
