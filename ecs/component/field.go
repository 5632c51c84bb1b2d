package component

type FieldEffect int

const (
	FieldTimeSlow FieldEffect = iota
	FieldTimeSpeed
	FieldGravity
	FieldUpDraft
	FieldDamage
)

var fieldEffectNames = map[FieldEffect]string{
	FieldTimeSlow:  "time_slow",
	FieldTimeSpeed: "time_speed",
	FieldGravity:   "gravity",
	FieldUpDraft:   "updraft",
	FieldDamage:    "damage",
}

func (f FieldEffect) String() string {
	if name, ok := fieldEffectNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFieldEffect maps a tuning name to an effect.
func ParseFieldEffect(name string) (FieldEffect, bool) {
	for effect, n := range fieldEffectNames {
		if n == name {
			return effect, true
		}
	}
	return 0, false
}

// Field is a circular trigger. Every entity it currently affects is listed
// in Inside so the field can pop its effectors when it goes away.
type Field struct {
	Effect FieldEffect
	Radius float64
	Inside map[Owner]struct{}
}

var FieldComponent = NewComponent[Field]()
