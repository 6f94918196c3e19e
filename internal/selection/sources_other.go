//go:build !windows

package selection

func platformSources(opts Options) []Source {
	primary := NewPrimarySource(opts.Wayland)
	if !primary.Available() {
		opts.Log.Warn("PRIMARY selection helper not installed, falling back to clipboard only", "source", primary.Name())
		return nil
	}
	return []Source{primary}
}
