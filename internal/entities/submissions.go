package entities

import "time"

// Submission tables are filled by public forms on the website and keep the
// snake_case columns the forms post.

// BazmeDurood is a pledge of durood recitations.
type BazmeDurood struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"id"`
	FullNameRoman string    `gorm:"column:full_name_roman;size:256;not null" json:"full_name_roman"`
	Country       string    `gorm:"column:country;size:128" json:"country"`
	City          string    `gorm:"column:city;size:128" json:"city"`
	DuroodCount   int64     `gorm:"column:durood_count;not null" json:"durood_count"`
	Dua           string    `gorm:"column:dua;type:text" json:"dua"`
	InsertedDate  time.Time `gorm:"column:inserted_date;autoCreateTime;index" json:"inserted_date"`
	IsDeleted     bool      `gorm:"index;not null;default:false" json:"IsDeleted"`
}

func (BazmeDurood) TableName() string {
	return "bazmedurood"
}

// MazmoonSubmission is a prose article sent in for review.
type MazmoonSubmission struct {
	ID              uint      `gorm:"column:id;primaryKey" json:"id"`
	Name            string    `gorm:"column:name;size:256;not null" json:"name"`
	Email           string    `gorm:"column:email;size:256" json:"email"`
	Whatsapp        string    `gorm:"column:whatsapp;size:64" json:"whatsapp"`
	City            string    `gorm:"column:city;size:128" json:"city"`
	Country         string    `gorm:"column:country;size:128" json:"country"`
	MazmoonTitle    string    `gorm:"column:mazmoon_title;size:512" json:"mazmoon_title"`
	MazmoonCategory string    `gorm:"column:mazmoon_category;size:256" json:"mazmoon_category"`
	MazmoonContent  string    `gorm:"column:mazmoon_content;type:text" json:"mazmoon_content"`
	Approved        bool      `gorm:"index;not null;default:false" json:"Approved"`
	CreatedAt       time.Time `gorm:"column:created_at;index" json:"created_at"`
	IsDeleted       bool      `gorm:"index;not null;default:false" json:"IsDeleted"`
}

func (MazmoonSubmission) TableName() string {
	return "mazmoon_submissions"
}

// KalamSubmission is a poem sent in for review.
type KalamSubmission struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	Name       string    `gorm:"column:name;size:256;not null" json:"name"`
	Email      string    `gorm:"column:email;size:256" json:"email"`
	Whatsapp   string    `gorm:"column:whatsapp;size:64" json:"whatsapp"`
	City       string    `gorm:"column:city;size:128" json:"city"`
	Country    string    `gorm:"column:country;size:128" json:"country"`
	PoetName   string    `gorm:"column:poet_name;size:256" json:"poet_name"`
	PoetBook   string    `gorm:"column:poet_book;size:512" json:"poet_book"`
	PoetIntro  string    `gorm:"column:poet_intro;type:text" json:"poet_intro"`
	KalamTitle string    `gorm:"column:kalam_title;size:512" json:"kalam_title"`
	Genre      string    `gorm:"column:genre;size:128" json:"genre"`
	Language   string    `gorm:"column:language;size:128" json:"language"`
	KalamBahr  string    `gorm:"column:kalam_bahr;size:256" json:"kalam_bahr"`
	Kalam      string    `gorm:"column:kalam;type:text" json:"kalam"`
	Approved   bool      `gorm:"index;not null;default:false" json:"Approved"`
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`
	IsDeleted  bool      `gorm:"index;not null;default:false" json:"IsDeleted"`
}

func (KalamSubmission) TableName() string {
	return "kalam_submissions"
}
