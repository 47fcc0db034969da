package render

// Mode is the render layout chosen once per invocation.
type Mode int

const (
	Inline Mode = iota
	Detailed
)

func (m Mode) String() string {
	switch m {
	case Inline:
		return "inline"
	case Detailed:
		return "detailed"
	default:
		return "unknown"
	}
}

// Columns selects the metadata columns of a detailed row. The icon+name
// column is always rendered and has no switch.
type Columns struct {
	Permissions  bool
	LinkCount    bool
	Owner        bool
	Group        bool
	Size         bool
	ModifiedDate bool
	HumanSize    bool // size column in IEC units instead of bytes
}

// AllColumns enables every metadata column.
func AllColumns() Columns {
	return Columns{
		Permissions:  true,
		LinkCount:    true,
		Owner:        true,
		Group:        true,
		Size:         true,
		ModifiedDate: true,
	}
}

// Config is the immutable render configuration.
type Config struct {
	mode    Mode
	columns Columns
}

// InlineConfig renders icon+name tokens without columns.
func InlineConfig() Config {
	return Config{mode: Inline}
}

// DetailedConfig renders one row per entry with the given columns.
func DetailedConfig(columns Columns) Config {
	return Config{mode: Detailed, columns: columns}
}

func (c Config) Mode() Mode { return c.mode }

// Columns returns the enabled columns; always empty in inline mode.
func (c Config) Columns() Columns { return c.columns }
