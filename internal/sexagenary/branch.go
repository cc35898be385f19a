package sexagenary

import "fmt"

// Branch is an earthly branch, 0 (子) through 11 (亥).
type Branch int

const NumBranches = 12

var branchHanzi = [NumBranches]string{"子", "丑", "寅", "卯", "辰", "巳", "午", "未", "申", "酉", "戌", "亥"}
var branchPinyin = [NumBranches]string{"Zi", "Chou", "Yin", "Mao", "Chen", "Si", "Wu", "Wei", "Shen", "You", "Xu", "Hai"}
var branchAnimal = [NumBranches]string{"Rat", "Ox", "Tiger", "Rabbit", "Dragon", "Snake", "Horse", "Goat", "Monkey", "Rooster", "Dog", "Pig"}

var branchElement = [NumBranches]Element{
	Water, Earth, Wood, Wood, Earth, Fire, Fire, Earth, Metal, Metal, Earth, Water,
}

// hiddenStems lists main qi first, then middle and residual qi.
var hiddenStems = [NumBranches][]Stem{
	{9},       // 子: 癸
	{5, 9, 7}, // 丑: 己 癸 辛
	{0, 2, 4}, // 寅: 甲 丙 戊
	{1},       // 卯: 乙
	{4, 1, 9}, // 辰: 戊 乙 癸
	{2, 6, 4}, // 巳: 丙 庚 戊
	{3, 5},    // 午: 丁 己
	{5, 3, 1}, // 未: 己 丁 乙
	{6, 8, 4}, // 申: 庚 壬 戊
	{7},       // 酉: 辛
	{4, 7, 3}, // 戌: 戊 辛 丁
	{8, 0},    // 亥: 壬 甲
}

// BranchOf normalizes any integer into a branch.
func BranchOf(n int) Branch { return Branch(floorMod(n, NumBranches)) }

// ParseBranch accepts the Chinese character.
func ParseBranch(s string) (Branch, error) {
	for i, h := range branchHanzi {
		if h == s {
			return Branch(i), nil
		}
	}
	return 0, fmt.Errorf("unknown branch %q", s)
}

func (b Branch) Valid() bool        { return b >= 0 && b < NumBranches }
func (b Branch) String() string     { return branchHanzi[b] }
func (b Branch) Pinyin() string     { return branchPinyin[b] }
func (b Branch) Animal() string     { return branchAnimal[b] }
func (b Branch) Element() Element   { return branchElement[b] }
func (b Branch) Polarity() Polarity { return Polarity(b % 2) }

// HiddenStems returns a copy of the stems stored in the branch, main qi first.
func (b Branch) HiddenStems() []Stem {
	out := make([]Stem, len(hiddenStems[b]))
	copy(out, hiddenStems[b])
	return out
}

func (b Branch) MarshalText() ([]byte, error) { return []byte(b.String()), nil }
