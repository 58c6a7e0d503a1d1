package render

// Default rendering parameters.
const (
	DefaultTitle      = "Component Connectivity"
	DefaultCaption    = "Distribution of citation network by connected component"
	DefaultNodeRadius = 5.0
	DefaultMargin     = 12.0

	CoverageTitle  = "Connectivity Progress by Component"
	CoverageWidth  = 640
	CoverageHeight = 480
)

// Options configures [ConnectivitySVG] and [ToDOT].
type Options struct {
	Title      string  `toml:"title" json:"title,omitempty"`
	Caption    string  `toml:"caption" json:"caption,omitempty"`
	NodeRadius float64 `toml:"node_radius" json:"node_radius,omitempty"`
	Margin     float64 `toml:"margin" json:"margin,omitempty"`
	// Edges draws a line for every edge. Dense graphs render much faster
	// without them.
	Edges bool `toml:"edges" json:"edges"`
	// Regions outlines the circle assigned to each component.
	Regions bool `toml:"regions" json:"regions"`
}

// DefaultOptions returns the default rendering options.
func DefaultOptions() Options {
	return Options{
		Title:      DefaultTitle,
		Caption:    DefaultCaption,
		NodeRadius: DefaultNodeRadius,
		Margin:     DefaultMargin,
		Edges:      true,
	}
}

func (o Options) withDefaults() Options {
	if o.NodeRadius <= 0 {
		o.NodeRadius = DefaultNodeRadius
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	return o
}
