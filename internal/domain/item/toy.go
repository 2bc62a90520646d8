package item

// Toy is a toy order item.
type Toy struct {
	typ             string
	ageGroup        string
	brand           string
	material        string
	batteryRequired bool
	educational     bool
}

func (Toy) Category() Category { return CategoryToy }

func (t Toy) Type() string          { return t.typ }
func (t Toy) AgeGroup() string      { return t.ageGroup }
func (t Toy) Brand() string         { return t.brand }
func (t Toy) Material() string      { return t.material }
func (t Toy) BatteryRequired() bool { return t.batteryRequired }
func (t Toy) Educational() bool     { return t.educational }

// ToyBuilder assembles a Toy. Boolean fields must be set explicitly, false
// included.
type ToyBuilder struct {
	t              Toy
	batterySet     bool
	educationalSet bool
}

// NewToyBuilder returns an empty ToyBuilder.
func NewToyBuilder() *ToyBuilder { return &ToyBuilder{} }

func (b *ToyBuilder) SetType(v string) *ToyBuilder     { b.t.typ = v; return b }
func (b *ToyBuilder) SetAgeGroup(v string) *ToyBuilder { b.t.ageGroup = v; return b }
func (b *ToyBuilder) SetBrand(v string) *ToyBuilder    { b.t.brand = v; return b }
func (b *ToyBuilder) SetMaterial(v string) *ToyBuilder { b.t.material = v; return b }

func (b *ToyBuilder) SetBatteryRequired(v bool) *ToyBuilder {
	b.t.batteryRequired, b.batterySet = v, true
	return b
}

func (b *ToyBuilder) SetEducational(v bool) *ToyBuilder {
	b.t.educational, b.educationalSet = v, true
	return b
}

func (b *ToyBuilder) Build() (Toy, error) {
	var m missing
	m.str("type", b.t.typ)
	m.str("ageGroup", b.t.ageGroup)
	m.str("brand", b.t.brand)
	m.str("material", b.t.material)
	m.set("batteryRequired", b.batterySet)
	m.set("educational", b.educationalSet)
	if err := m.err("Toy"); err != nil {
		return Toy{}, err
	}
	return b.t, nil
}

// IdentifiableToy is a Toy with an id.
type IdentifiableToy struct {
	Toy
	id string
}

func (t IdentifiableToy) ID() string { return t.id }

type IdentifiableToyBuilder struct {
	id     string
	toy    Toy
	toySet bool
}

// NewIdentifiableToyBuilder returns an empty IdentifiableToyBuilder.
func NewIdentifiableToyBuilder() *IdentifiableToyBuilder { return &IdentifiableToyBuilder{} }

func (b *IdentifiableToyBuilder) SetID(id string) *IdentifiableToyBuilder {
	b.id = id
	return b
}

func (b *IdentifiableToyBuilder) SetToy(v Toy) *IdentifiableToyBuilder {
	b.toy, b.toySet = v, true
	return b
}

func (b *IdentifiableToyBuilder) Build() (IdentifiableToy, error) {
	var m missing
	m.str("id", b.id)
	m.set("toy", b.toySet)
	if err := m.err("IdentifiableToy"); err != nil {
		return IdentifiableToy{}, err
	}
	return IdentifiableToy{Toy: b.toy, id: b.id}, nil
}
