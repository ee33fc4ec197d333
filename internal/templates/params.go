package templates

// Params carries the optional arguments of a generator. Fields that were not
// supplied fall back to each generator's own default.
type Params struct {
	text     string
	subtitle string
	items    []string
	width    int
	height   int
	count    int
	on       bool
	percent  int
	set      field
}

type field uint8

const (
	fieldText field = 1 << iota
	fieldSubtitle
	fieldItems
	fieldWidth
	fieldHeight
	fieldCount
	fieldOn
	fieldPercent
)

// Option sets one generator argument.
type Option func(*Params)

// Text is the caption, label, title or placeholder of a shape.
func Text(s string) Option {
	return func(p *Params) { p.text = s; p.set |= fieldText }
}

func Subtitle(s string) Option {
	return func(p *Params) { p.subtitle = s; p.set |= fieldSubtitle }
}

// Items lists tab labels, table columns, menu entries, lanes or attributes.
func Items(items ...string) Option {
	return func(p *Params) {
		p.items = append([]string(nil), items...)
		p.set |= fieldItems
	}
}

// Width is the outer width, or the length of a horizontal connector.
func Width(n int) Option {
	return func(p *Params) { p.width = n; p.set |= fieldWidth }
}

// Height is the outer height, or the length of a vertical connector.
func Height(n int) Option {
	return func(p *Params) { p.height = n; p.set |= fieldHeight }
}

func Size(w, h int) Option {
	return func(p *Params) {
		Width(w)(p)
		Height(h)(p)
	}
}

// Count is the number of body rows of a table.
func Count(n int) Option {
	return func(p *Params) { p.count = n; p.set |= fieldCount }
}

// On checks a checkbox, selects a radio button or switches a toggle on.
func On(b bool) Option {
	return func(p *Params) { p.on = b; p.set |= fieldOn }
}

func Percent(n int) Option {
	return func(p *Params) { p.percent = n; p.set |= fieldPercent }
}

func newParams(opts []Option) Params {
	var p Params
	for _, opt := range opts {
		if opt != nil {
			opt(&p)
		}
	}
	return p
}

func (p Params) has(f field) bool { return p.set&f != 0 }

func (p Params) Text(def string) string {
	if p.has(fieldText) {
		return p.text
	}
	return def
}

func (p Params) Subtitle(def string) string {
	if p.has(fieldSubtitle) {
		return p.subtitle
	}
	return def
}

func (p Params) Items(def ...string) []string {
	if p.has(fieldItems) {
		return p.items
	}
	return def
}

func (p Params) Width(def int) int {
	if p.has(fieldWidth) {
		return p.width
	}
	return def
}

func (p Params) Height(def int) int {
	if p.has(fieldHeight) {
		return p.height
	}
	return def
}

func (p Params) Count(def int) int {
	if p.has(fieldCount) {
		return p.count
	}
	return def
}

func (p Params) On(def bool) bool {
	if p.has(fieldOn) {
		return p.on
	}
	return def
}

func (p Params) Percent(def int) int {
	if p.has(fieldPercent) {
		return p.percent
	}
	return def
}
