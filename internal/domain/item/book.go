package item

// Book is a book order item.
type Book struct {
	title          string
	author         string
	genre          string
	format         string
	language       string
	publisher      string
	specialEdition string
	packaging      string
}

func (Book) Category() Category { return CategoryBook }

func (b Book) Title() string          { return b.title }
func (b Book) Author() string         { return b.author }
func (b Book) Genre() string          { return b.genre }
func (b Book) Format() string         { return b.format }
func (b Book) Language() string       { return b.language }
func (b Book) Publisher() string      { return b.publisher }
func (b Book) SpecialEdition() string { return b.specialEdition }
func (b Book) Packaging() string      { return b.packaging }

// BookBuilder assembles a Book.
type BookBuilder struct {
	b Book
}

// NewBookBuilder returns an empty BookBuilder.
func NewBookBuilder() *BookBuilder { return &BookBuilder{} }

func (b *BookBuilder) SetTitle(v string) *BookBuilder          { b.b.title = v; return b }
func (b *BookBuilder) SetAuthor(v string) *BookBuilder         { b.b.author = v; return b }
func (b *BookBuilder) SetGenre(v string) *BookBuilder          { b.b.genre = v; return b }
func (b *BookBuilder) SetFormat(v string) *BookBuilder         { b.b.format = v; return b }
func (b *BookBuilder) SetLanguage(v string) *BookBuilder       { b.b.language = v; return b }
func (b *BookBuilder) SetPublisher(v string) *BookBuilder      { b.b.publisher = v; return b }
func (b *BookBuilder) SetSpecialEdition(v string) *BookBuilder { b.b.specialEdition = v; return b }
func (b *BookBuilder) SetPackaging(v string) *BookBuilder      { b.b.packaging = v; return b }

func (b *BookBuilder) Build() (Book, error) {
	var m missing
	m.str("title", b.b.title)
	m.str("author", b.b.author)
	m.str("genre", b.b.genre)
	m.str("format", b.b.format)
	m.str("language", b.b.language)
	m.str("publisher", b.b.publisher)
	m.str("specialEdition", b.b.specialEdition)
	m.str("packaging", b.b.packaging)
	if err := m.err("Book"); err != nil {
		return Book{}, err
	}
	return b.b, nil
}

// IdentifiableBook is a Book with an id.
type IdentifiableBook struct {
	Book
	id string
}

func (b IdentifiableBook) ID() string { return b.id }

type IdentifiableBookBuilder struct {
	id      string
	book    Book
	bookSet bool
}

// NewIdentifiableBookBuilder returns an empty IdentifiableBookBuilder.
func NewIdentifiableBookBuilder() *IdentifiableBookBuilder { return &IdentifiableBookBuilder{} }

func (b *IdentifiableBookBuilder) SetID(id string) *IdentifiableBookBuilder {
	b.id = id
	return b
}

func (b *IdentifiableBookBuilder) SetBook(v Book) *IdentifiableBookBuilder {
	b.book, b.bookSet = v, true
	return b
}

func (b *IdentifiableBookBuilder) Build() (IdentifiableBook, error) {
	var m missing
	m.str("id", b.id)
	m.set("book", b.bookSet)
	if err := m.err("IdentifiableBook"); err != nil {
		return IdentifiableBook{}, err
	}
	return IdentifiableBook{Book: b.book, id: b.id}, nil
}
