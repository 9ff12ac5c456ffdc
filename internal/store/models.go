package store

import "time"

// Sector is one industry vertical shown on the marketing site. Public
// visibility is gated by IsActive; IsFeatured selects the homepage subset
// and only takes effect for active sectors.
type Sector struct {
	ID              string
	Title           string
	Slug            string
	Description     string
	Content         string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	SortOrder       int
	IsActive        bool
	IsFeatured      bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CaseStudy is a client success story. Drafts (IsPublished=false) are
// invisible on every public route, including direct slug lookup.
type CaseStudy struct {
	ID              string
	Title           string
	Slug            string
	Description     string
	Content         string
	ClientName      string
	Industry        string
	Technologies    string
	Challenge       string
	Solution        string
	Results         string
	Category        string
	FeaturedImage   string
	Logo            string
	Images          string // JSON array of URLs
	MetaTitle       string
	MetaDescription string
	SortOrder       int
	IsPublished     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ContactSubmission struct {
	ID        string
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Email     string
	Message   string
	CreatedAt time.Time
}

// GlobalSettings is a singleton: contact details and social links shown in
// the site chrome. Created lazily on first read.
type GlobalSettings struct {
	ID        string
	Email     string
	Phone     string
	Address   string
	Facebook  string
	Linkedin  string
	Twitter   string
	Instagram string
	Youtube   string
	UpdatedAt time.Time
}

type AdminUser struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
}

// SortOrderUpdate is one (id, rank) pair of a persisted reorder.
type SortOrderUpdate struct {
	ID        string
	SortOrder int
}
