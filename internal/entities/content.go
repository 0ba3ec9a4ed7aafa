package entities

import "time"

// Column names shared by every content table. Tables keep the PascalCase
// column names of the production MySQL schema.
const (
	ColumnIsDeleted  = "IsDeleted"
	ColumnSearchKeys = "SearchKeys"
	ColumnTitle      = "Title"
	ColumnWriterName = "WriterName"
	ColumnCategory   = "CategoryName"
	ColumnCreatedOn  = "CreatedOn"
)

// Lifecycle holds the soft-delete flag and timestamps embedded in every
// content row.
type Lifecycle struct {
	IsDeleted bool      `gorm:"index;not null;default:false" json:"IsDeleted"`
	CreatedOn time.Time `gorm:"autoCreateTime" json:"CreatedOn"`
	UpdatedOn time.Time `gorm:"autoUpdateTime" json:"UpdatedOn"`
}

type Article struct {
	ArticleID      uint   `gorm:"primaryKey" json:"ArticleID"`
	Title          string `gorm:"size:512;not null" json:"Title"`
	WriterID       uint   `gorm:"index" json:"WriterID"`
	WriterName     string `gorm:"size:256" json:"WriterName"`
	CategoryID     uint   `gorm:"index" json:"CategoryID"`
	CategoryName   string `gorm:"size:256" json:"CategoryName"`
	ThumbnailURL   string `gorm:"size:2048" json:"ThumbnailURL"`
	ContentUrdu    string `gorm:"type:text" json:"ContentUrdu"`
	ContentEnglish string `gorm:"type:text" json:"ContentEnglish"`
	GroupID        uint   `gorm:"index" json:"GroupID"`
	GroupName      string `gorm:"size:256" json:"GroupName"`
	SectionID      uint   `gorm:"index" json:"SectionID"`
	SectionName    string `gorm:"size:256" json:"SectionName"`
	Topic          string `gorm:"size:256" json:"Topic"`
	TopicID        uint   `gorm:"index" json:"TopicID"`
	TopicName      string `gorm:"size:256" json:"TopicName"`
	SearchKeys     string `gorm:"type:text" json:"SearchKeys"`
	Lifecycle
}

func (Article) TableName() string {
	return "Article"
}

// SearchableText returns the fields whose words feed SearchKeys.
func (a Article) SearchableText() []string {
	return []string{
		a.Title, a.WriterName, a.CategoryName, a.GroupName, a.SectionName,
		a.Topic, a.TopicName, a.ContentUrdu, a.ContentEnglish,
	}
}

// Kalaam is a devotional poem. Content is stored per script/language.
type Kalaam struct {
	KalaamID         uint   `gorm:"primaryKey" json:"KalaamID"`
	Title            string `gorm:"size:512;not null" json:"Title"`
	WriterID         uint   `gorm:"index" json:"WriterID"`
	WriterName       string `gorm:"size:256" json:"WriterName"`
	CategoryID       uint   `gorm:"index" json:"CategoryID"`
	CategoryName     string `gorm:"size:256" json:"CategoryName"`
	ContentUrdu      string `gorm:"type:text" json:"ContentUrdu"`
	ContentRomanUrdu string `gorm:"type:text" json:"ContentRomanUrdu"`
	ContentArabic    string `gorm:"type:text" json:"ContentArabic"`
	ContentEnglish   string `gorm:"type:text" json:"ContentEnglish"`
	GroupID          uint   `gorm:"index" json:"GroupID"`
	GroupName        string `gorm:"size:256" json:"GroupName"`
	SectionID        uint   `gorm:"index" json:"SectionID"`
	SectionName      string `gorm:"size:256" json:"SectionName"`
	BookID           uint   `gorm:"index" json:"BookID"`
	BookName         string `gorm:"size:512" json:"BookName"`
	IsFeatured       bool   `gorm:"index" json:"IsFeatured"`
	IsSelected       bool   `json:"IsSelected"`
	SearchKeys       string `gorm:"type:text" json:"SearchKeys"`
	Lifecycle
}

func (Kalaam) TableName() string {
	return "Kalaam"
}

// SearchableText returns the fields whose words feed SearchKeys.
func (k Kalaam) SearchableText() []string {
	return []string{
		k.Title, k.WriterName, k.CategoryName, k.GroupName, k.SectionName, k.BookName,
		k.ContentUrdu, k.ContentRomanUrdu, k.ContentArabic, k.ContentEnglish,
	}
}
