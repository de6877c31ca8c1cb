package invaders

// Listener receives fire-and-forget gameplay notifications, typically to
// trigger sound effects. Implementations must return promptly: they are
// called synchronously from Update and the intent commands.
type Listener interface {
	OnShot()
	OnExplosion()
}

// NopListener ignores all notifications.
type NopListener struct{}

// OnShot implements Listener.
func (NopListener) OnShot() {}

// OnExplosion implements Listener.
func (NopListener) OnExplosion() {}

// multiListener fans notifications out to several listeners in order.
type multiListener []Listener

func (m multiListener) OnShot() {
	for _, l := range m {
		l.OnShot()
	}
}

func (m multiListener) OnExplosion() {
	for _, l := range m {
		l.OnExplosion()
	}
}

// Listeners combines listeners into one. Nil entries are dropped.
func Listeners(ls ...Listener) Listener {
	out := make(multiListener, 0, len(ls))
	for _, l := range ls {
		if l != nil {
			out = append(out, l)
		}
	}
	switch len(out) {
	case 0:
		return NopListener{}
	case 1:
		return out[0]
	}
	return out
}
