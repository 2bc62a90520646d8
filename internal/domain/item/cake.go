package item

// Cake is a custom cake order item.
type Cake struct {
	typ                string
	flavor             string
	filling            string
	size               int
	layers             int
	frostingType       string
	frostingFlavor     string
	decorationType     string
	decorationColor    string
	customMessage      string
	shape              string
	allergies          string
	specialIngredients string
	packagingType      string
}

func (Cake) Category() Category { return CategoryCake }

func (c Cake) Type() string               { return c.typ }
func (c Cake) Flavor() string             { return c.flavor }
func (c Cake) Filling() string            { return c.filling }
func (c Cake) Size() int                  { return c.size }
func (c Cake) Layers() int                { return c.layers }
func (c Cake) FrostingType() string       { return c.frostingType }
func (c Cake) FrostingFlavor() string     { return c.frostingFlavor }
func (c Cake) DecorationType() string     { return c.decorationType }
func (c Cake) DecorationColor() string    { return c.decorationColor }
func (c Cake) CustomMessage() string      { return c.customMessage }
func (c Cake) Shape() string              { return c.shape }
func (c Cake) Allergies() string          { return c.allergies }
func (c Cake) SpecialIngredients() string { return c.specialIngredients }
func (c Cake) PackagingType() string      { return c.packagingType }

// CakeBuilder assembles a Cake. Setters may be called in any order; the last
// call wins.
type CakeBuilder struct {
	c         Cake
	sizeSet   bool
	layersSet bool
}

// NewCakeBuilder returns an empty CakeBuilder.
func NewCakeBuilder() *CakeBuilder { return &CakeBuilder{} }

func (b *CakeBuilder) SetType(v string) *CakeBuilder    { b.c.typ = v; return b }
func (b *CakeBuilder) SetFlavor(v string) *CakeBuilder  { b.c.flavor = v; return b }
func (b *CakeBuilder) SetFilling(v string) *CakeBuilder { b.c.filling = v; return b }

func (b *CakeBuilder) SetSize(v int) *CakeBuilder {
	b.c.size, b.sizeSet = v, true
	return b
}

func (b *CakeBuilder) SetLayers(v int) *CakeBuilder {
	b.c.layers, b.layersSet = v, true
	return b
}

func (b *CakeBuilder) SetFrostingType(v string) *CakeBuilder    { b.c.frostingType = v; return b }
func (b *CakeBuilder) SetFrostingFlavor(v string) *CakeBuilder  { b.c.frostingFlavor = v; return b }
func (b *CakeBuilder) SetDecorationType(v string) *CakeBuilder  { b.c.decorationType = v; return b }
func (b *CakeBuilder) SetDecorationColor(v string) *CakeBuilder { b.c.decorationColor = v; return b }
func (b *CakeBuilder) SetCustomMessage(v string) *CakeBuilder   { b.c.customMessage = v; return b }
func (b *CakeBuilder) SetShape(v string) *CakeBuilder           { b.c.shape = v; return b }
func (b *CakeBuilder) SetAllergies(v string) *CakeBuilder       { b.c.allergies = v; return b }

func (b *CakeBuilder) SetSpecialIngredients(v string) *CakeBuilder {
	b.c.specialIngredients = v
	return b
}

func (b *CakeBuilder) SetPackagingType(v string) *CakeBuilder { b.c.packagingType = v; return b }

// Build returns the Cake or an IncompleteObjectError listing unset fields.
func (b *CakeBuilder) Build() (Cake, error) {
	var m missing
	m.str("type", b.c.typ)
	m.str("flavor", b.c.flavor)
	m.str("filling", b.c.filling)
	m.set("size", b.sizeSet)
	m.set("layers", b.layersSet)
	m.str("frostingType", b.c.frostingType)
	m.str("frostingFlavor", b.c.frostingFlavor)
	m.str("decorationType", b.c.decorationType)
	m.str("decorationColor", b.c.decorationColor)
	m.str("customMessage", b.c.customMessage)
	m.str("shape", b.c.shape)
	m.str("allergies", b.c.allergies)
	m.str("specialIngredients", b.c.specialIngredients)
	m.str("packagingType", b.c.packagingType)
	if err := m.err("Cake"); err != nil {
		return Cake{}, err
	}
	return b.c, nil
}

// IdentifiableCake is a Cake with an id.
type IdentifiableCake struct {
	Cake
	id string
}

func (c IdentifiableCake) ID() string { return c.id }

// IdentifiableCakeBuilder pairs a built Cake with an id.
type IdentifiableCakeBuilder struct {
	id      string
	cake    Cake
	cakeSet bool
}

// NewIdentifiableCakeBuilder returns an empty IdentifiableCakeBuilder.
func NewIdentifiableCakeBuilder() *IdentifiableCakeBuilder { return &IdentifiableCakeBuilder{} }

func (b *IdentifiableCakeBuilder) SetID(id string) *IdentifiableCakeBuilder {
	b.id = id
	return b
}

func (b *IdentifiableCakeBuilder) SetCake(c Cake) *IdentifiableCakeBuilder {
	b.cake, b.cakeSet = c, true
	return b
}

func (b *IdentifiableCakeBuilder) Build() (IdentifiableCake, error) {
	var m missing
	m.str("id", b.id)
	m.set("cake", b.cakeSet)
	if err := m.err("IdentifiableCake"); err != nil {
		return IdentifiableCake{}, err
	}
	return IdentifiableCake{Cake: b.cake, id: b.id}, nil
}
