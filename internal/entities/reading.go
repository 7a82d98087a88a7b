package entities

import "time"

type BookKind string

const (
	BookKindBook       BookKind = "book"
	BookKindDevotional BookKind = "devotional"
)

// Book is long-form content read page by page.
type Book struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Title     string     `gorm:"index;size:512" json:"title"`
	Author    string     `gorm:"size:256" json:"author,omitempty"`
	Kind      BookKind   `gorm:"size:20;default:'book'" json:"kind"`
	Pages     []BookPage `gorm:"foreignKey:BookID" json:"pages,omitempty"`
	PageCount int        `gorm:"-" json:"page_count"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookPage numbers are 1-based and unique per book.
type BookPage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	BookID  uint   `gorm:"uniqueIndex:idx_book_page" json:"book_id"`
	Number  int    `gorm:"uniqueIndex:idx_book_page" json:"number"`
	Content string `gorm:"type:text" json:"content"`
}

func (BookPage) TableName() string {
	return "book_pages"
}

// ReadingProgress is the bookmarked reading position of a user in a book.
type ReadingProgress struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_progress_user_book" json:"user_id"`
	BookID    uint      `gorm:"uniqueIndex:idx_progress_user_book" json:"book_id"`
	Page      int       `json:"page"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReadingProgress) TableName() string {
	return "reading_progress"
}
