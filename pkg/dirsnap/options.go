package dirsnap

// Options controls how a snapshot walks and renders its entries.
// Absolute and Relative are mutually exclusive; use the With* helpers to keep
// that invariant when toggling them.
type Options struct {
	Absolute  bool `yaml:"absolute" json:"absolute"`
	Relative  bool `yaml:"relative" json:"relative"`
	Recursive bool `yaml:"recursive" json:"recursive"`
	FilesOnly bool `yaml:"files_only" json:"filesOnly"`
}

// WithAbsolute returns a copy with Absolute set. Enabling it clears Relative.
func (o Options) WithAbsolute(absolute bool) Options {
	o.Absolute = absolute
	if absolute {
		o.Relative = false
	}
	return o
}

// WithRelative returns a copy with Relative set. Enabling it clears Absolute.
func (o Options) WithRelative(relative bool) Options {
	o.Relative = relative
	if relative {
		o.Absolute = false
	}
	return o
}

// WithRecursive returns a copy with Recursive set.
func (o Options) WithRecursive(recursive bool) Options {
	o.Recursive = recursive
	return o
}

// WithFilesOnly returns a copy with FilesOnly set.
func (o Options) WithFilesOnly(filesOnly bool) Options {
	o.FilesOnly = filesOnly
	return o
}

// Normalized resolves a literal with both path modes set. Absolute wins.
func (o Options) Normalized() Options {
	if o.Absolute && o.Relative {
		o.Relative = false
	}
	return o
}

// PathMode names the rendering mode in effect.
func (o Options) PathMode() string {
	switch {
	case o.Absolute:
		return "absolute"
	case o.Relative:
		return "relative"
	default:
		return "name"
	}
}
