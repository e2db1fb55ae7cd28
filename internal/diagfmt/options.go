package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Width     int // maximum rendered line width, 0 means unlimited
	ShowNotes bool
	ShowHints bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	Max          int // output truncation, the Bag stays intact
	IncludeNotes bool
	IncludeHints bool
}
