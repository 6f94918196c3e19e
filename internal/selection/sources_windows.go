//go:build windows

package selection

func platformSources(opts Options) []Source {
	return []Source{NewWin32Source(opts.Log)}
}
