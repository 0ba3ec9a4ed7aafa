package entities

type Writer struct {
	WriterID        uint   `gorm:"primaryKey" json:"WriterID"`
	Name            string `gorm:"size:256;not null;index" json:"Name"`
	LanguageID      uint   `gorm:"index" json:"LanguageID"`
	LanguageName    string `gorm:"size:128" json:"LanguageName"`
	Status          string `gorm:"size:64" json:"Status"`
	GroupID         uint   `gorm:"index" json:"GroupID"`
	GroupName       string `gorm:"size:256" json:"GroupName"`
	SectionID       uint   `gorm:"index" json:"SectionID"`
	SectionName     string `gorm:"size:256" json:"SectionName"`
	ProfileImageURL string `gorm:"size:2048" json:"ProfileImageURL"`
	Bio             string `gorm:"type:text" json:"Bio"`
	Wiladat         string `gorm:"column:wiladat;size:128" json:"wiladat"` // date of birth
	Wisal           string `gorm:"column:wisal;size:128" json:"wisal"`     // date of passing
	Lifecycle
}

func (Writer) TableName() string {
	return "Writer"
}

type Book struct {
	BookID          uint   `gorm:"primaryKey" json:"BookID"`
	Title           string `gorm:"size:512;not null;index" json:"Title"`
	AuthorID        uint   `gorm:"index" json:"AuthorID"`
	AuthorName      string `gorm:"size:256" json:"AuthorName"`
	LanguageID      uint   `gorm:"index" json:"LanguageID"`
	LanguageName    string `gorm:"size:128" json:"LanguageName"`
	CategoryID      uint   `gorm:"index" json:"CategoryID"`
	CategoryName    string `gorm:"size:256" json:"CategoryName"`
	GroupID         uint   `gorm:"index" json:"GroupID"`
	GroupName       string `gorm:"size:256" json:"GroupName"`
	SectionID       uint   `gorm:"index" json:"SectionID"`
	SectionName     string `gorm:"size:256" json:"SectionName"`
	CoverImageURL   string `gorm:"size:2048" json:"CoverImageURL"`
	PDFURL          string `gorm:"size:2048" json:"PDFURL"`
	PublicationYear int    `json:"PublicationYear"`
	Description     string `gorm:"type:text" json:"Description"`
	Lifecycle
}

func (Book) TableName() string {
	return "Book"
}

type Category struct {
	CategoryID  uint   `gorm:"primaryKey" json:"CategoryID"`
	Name        string `gorm:"size:256;not null" json:"Name"`
	Slug        string `gorm:"size:256;index" json:"Slug"`
	Color       string `gorm:"size:32" json:"Color"`
	GroupID     uint   `gorm:"index" json:"GroupID"`
	GroupName   string `gorm:"size:256" json:"GroupName"`
	Description string `gorm:"type:text" json:"Description"`
	Lifecycle
}

func (Category) TableName() string {
	return "Category"
}

// Group is a top-level grouping of content. The table is named Groups
// because GROUP is reserved in SQL.
type Group struct {
	GroupID          uint   `gorm:"primaryKey" json:"GroupID"`
	GroupName        string `gorm:"size:256;not null" json:"GroupName"`
	GroupDescription string `gorm:"type:text" json:"GroupDescription"`
	GroupImageURL    string `gorm:"size:2048" json:"GroupImageURL"`
	IsFeatured       bool   `json:"IsFeatured"`
	Lifecycle
}

func (Group) TableName() string {
	return "Groups"
}

type Section struct {
	SectionID          uint   `gorm:"primaryKey" json:"SectionID"`
	SectionName        string `gorm:"size:256;not null" json:"SectionName"`
	SectionDescription string `gorm:"type:text" json:"SectionDescription"`
	SectionImageURL    string `gorm:"size:2048" json:"SectionImageURL"`
	IsFeatured         bool   `json:"IsFeatured"`
	Lifecycle
}

func (Section) TableName() string {
	return "Section"
}

type Topic struct {
	TopicID      uint   `gorm:"primaryKey" json:"TopicID"`
	Title        string `gorm:"size:512;not null" json:"Title"`
	CategoryID   uint   `gorm:"index" json:"CategoryID"`
	CategoryName string `gorm:"size:256" json:"CategoryName"`
	Slug         string `gorm:"size:256;index" json:"Slug"`
	GroupID      uint   `gorm:"index" json:"GroupID"`
	GroupName    string `gorm:"size:256" json:"GroupName"`
	Description  string `gorm:"type:text" json:"Description"`
	Lifecycle
}

func (Topic) TableName() string {
	return "Topic"
}

type Language struct {
	LanguageID   uint   `gorm:"primaryKey" json:"LanguageID"`
	LanguageName string `gorm:"size:128;not null;index" json:"LanguageName"`
	Description  string `gorm:"type:text" json:"Description"`
	Lifecycle
}

func (Language) TableName() string {
	return "Language"
}
