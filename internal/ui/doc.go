package ui

// Package ui implements the single-window shell: URL entry with a debounced
// metadata fetch, thumbnail preview, and download controls. All coordinator
// events arrive on the dispatch goroutine and are marshaled onto the fyne
// main thread with fyne.Do before touching widgets.
