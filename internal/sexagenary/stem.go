// Package sexagenary holds the ten stems, twelve branches and the arithmetic
// of the 60-term cycle they form.
package sexagenary

import "fmt"

// Element is one of the five phases, in generating order.
type Element int

const (
	Wood Element = iota
	Fire
	Earth
	Metal
	Water
)

var elementNames = [5]string{"wood", "fire", "earth", "metal", "water"}
var elementHanzi = [5]string{"木", "火", "土", "金", "水"}

func (e Element) String() string { return elementNames[e] }

// Hanzi returns the single-character name.
func (e Element) Hanzi() string { return elementHanzi[e] }

// Produces returns the element this one generates (wood feeds fire, ...).
func (e Element) Produces() Element { return (e + 1) % 5 }

// Controls returns the element this one overcomes (wood parts earth, ...).
func (e Element) Controls() Element { return (e + 2) % 5 }

// Elements lists all five in generating order.
func Elements() [5]Element { return [5]Element{Wood, Fire, Earth, Metal, Water} }

type Polarity int

const (
	Yang Polarity = iota
	Yin
)

func (p Polarity) String() string {
	if p == Yang {
		return "yang"
	}
	return "yin"
}

// Stem is a heavenly stem, 0 (甲) through 9 (癸).
type Stem int

const NumStems = 10

var stemHanzi = [NumStems]string{"甲", "乙", "丙", "丁", "戊", "己", "庚", "辛", "壬", "癸"}
var stemPinyin = [NumStems]string{"Jia", "Yi", "Bing", "Ding", "Wu", "Ji", "Geng", "Xin", "Ren", "Gui"}

// StemOf normalizes any integer into a stem.
func StemOf(n int) Stem { return Stem(floorMod(n, NumStems)) }

// ParseStem accepts the Chinese character.
func ParseStem(s string) (Stem, error) {
	for i, h := range stemHanzi {
		if h == s {
			return Stem(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stem %q", s)
}

func (s Stem) Valid() bool        { return s >= 0 && s < NumStems }
func (s Stem) String() string     { return stemHanzi[s] }
func (s Stem) Pinyin() string     { return stemPinyin[s] }
func (s Stem) Element() Element   { return Element(s / 2) }
func (s Stem) Polarity() Polarity { return Polarity(s % 2) }

func (e Element) MarshalText() ([]byte, error)  { return []byte(e.String()), nil }
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
func (s Stem) MarshalText() ([]byte, error)     { return []byte(s.String()), nil }
