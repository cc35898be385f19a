package sexagenary

// TenGod names the relationship of a stem to the day master.
type TenGod int

const (
	Friend TenGod = iota
	RobWealth
	EatingGod
	HurtingOfficer
	IndirectWealth
	DirectWealth
	SevenKillings
	DirectOfficer
	IndirectResource
	DirectResource
)

var tenGodHanzi = [10]string{"比肩", "劫财", "食神", "伤官", "偏财", "正财", "七杀", "正官", "偏印", "正印"}
var tenGodNames = [10]string{
	"friend", "rob wealth", "eating god", "hurting officer", "indirect wealth",
	"direct wealth", "seven killings", "direct officer", "indirect resource", "direct resource",
}

func (g TenGod) String() string { return tenGodNames[g] }
func (g TenGod) Hanzi() string  { return tenGodHanzi[g] }

// TenGodOf classifies other against the day master dm. The five element
// relations (same, produced, controlled, controlling, producing) each split
// by whether the polarities agree.
func TenGodOf(dm, other Stem) TenGod {
	rel := floorMod(int(other.Element())-int(dm.Element()), 5)
	g := TenGod(rel * 2)
	if dm.Polarity() != other.Polarity() {
		g++
	}
	return g
}

// Clashes reports the six opposing pairs (子午, 丑未, ...).
func Clashes(a, b Branch) bool {
	return floorMod(int(a)-int(b), NumBranches) == 6
}

// Combines reports the six harmonies (子丑, 寅亥, 卯戌, 辰酉, 巳申, 午未).
func Combines(a, b Branch) bool {
	return a != b && floorMod(int(a)+int(b), NumBranches) == 1
}

func (g TenGod) MarshalText() ([]byte, error) { return []byte(g.String()), nil }
