package content

import (
	"encoding/json"
	"fmt"
	"time"
)

// Entity inputs use pointer fields so a partial update writes only the
// fields that were supplied. A nil ID means create.

type ServiceOffering struct {
	ID          *string  `json:"id,omitempty"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Features    []string `json:"features,omitempty"`
	PriceFrom   *string  `json:"price_from,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (s ServiceOffering) Fields() Row {
	r := Row{}
	putString(r, "title", s.Title)
	putString(r, "description", s.Description)
	putString(r, "icon", s.Icon)
	putString(r, "category", s.Category)
	putString(r, "price_from", s.PriceFrom)
	putInt(r, "sort_order", s.SortOrder)
	putBool(r, "is_active", s.IsActive)
	if s.Features != nil {
		r["features"] = s.Features
	}
	return r
}

type PricingPlan struct {
	ID          *string  `json:"id,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Pages       *string  `json:"pages,omitempty"`
	Price       *string  `json:"price,omitempty"`
	PriceNote   *string  `json:"price_note,omitempty"`
	Icon        *string  `json:"icon,omitempty"`
	Features    []string `json:"features,omitempty"`
	IsPopular   *bool    `json:"is_popular,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// Fields serializes Features as a JSON text array; pricing_plans.features is a text column.
func (p PricingPlan) Fields() (Row, error) {
	r := Row{}
	putString(r, "name", p.Name)
	putString(r, "description", p.Description)
	putString(r, "pages", p.Pages)
	putString(r, "price", p.Price)
	putString(r, "price_note", p.PriceNote)
	putString(r, "icon", p.Icon)
	putBool(r, "is_popular", p.IsPopular)
	putInt(r, "sort_order", p.SortOrder)
	putBool(r, "is_active", p.IsActive)
	if p.Features != nil {
		encoded, err := EncodeFeatures(p.Features)
		if err != nil {
			return nil, err
		}
		r["features"] = encoded
	}
	return r, nil
}

func EncodeFeatures(features []string) (string, error) {
	b, err := json.Marshal(features)
	if err != nil {
		return "", fmt.Errorf("error encoding features: %w", err)
	}
	return string(b), nil
}

type Testimonial struct {
	ID        *string `json:"id,omitempty"`
	Name      *string `json:"name,omitempty"`
	Role      *string `json:"role,omitempty"`
	Company   *string `json:"company,omitempty"`
	Content   *string `json:"content,omitempty"`
	Rating    *int    `json:"rating,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
}

func (t Testimonial) Fields() Row {
	r := Row{}
	putString(r, "name", t.Name)
	putString(r, "role", t.Role)
	putString(r, "company", t.Company)
	putString(r, "content", t.Content)
	putInt(r, "rating", t.Rating)
	putString(r, "avatar_url", t.AvatarURL)
	putInt(r, "sort_order", t.SortOrder)
	putBool(r, "is_active", t.IsActive)
	return r
}

type BlogPost struct {
	ID            *string    `json:"id,omitempty"`
	Title         *string    `json:"title,omitempty"`
	Slug          *string    `json:"slug,omitempty"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	Content       *string    `json:"content,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	Author        *string    `json:"author,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	IsPublished   *bool      `json:"is_published,omitempty"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

// Fields stamps published_at with now when the post is published without a
// timestamp. With deriveSlug set, a missing slug is derived from the title.
func (b BlogPost) Fields(now time.Time, deriveSlug bool) Row {
	r := Row{}
	putString(r, "title", b.Title)
	putString(r, "excerpt", b.Excerpt)
	putString(r, "content", b.Content)
	putString(r, "cover_image_url", b.CoverImageURL)
	putString(r, "author", b.Author)
	putBool(r, "is_published", b.IsPublished)
	if b.Tags != nil {
		r["tags"] = b.Tags
	}

	switch {
	case b.Slug != nil && *b.Slug != "":
		r["slug"] = *b.Slug
	case deriveSlug && b.Title != nil:
		r["slug"] = Slugify(*b.Title)
	}

	switch {
	case b.PublishedAt != nil:
		r["published_at"] = b.PublishedAt.UTC()
	case b.IsPublished != nil && *b.IsPublished:
		r["published_at"] = now.UTC()
	}
	return r
}

type PortfolioItem struct {
	ID           *string  `json:"id,omitempty"`
	Title        *string  `json:"title,omitempty"`
	ClientName   *string  `json:"client_name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Category     *string  `json:"category,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	ProjectURL   *string  `json:"project_url,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	SortOrder    *int     `json:"sort_order,omitempty"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

func (p PortfolioItem) Fields() Row {
	r := Row{}
	putString(r, "title", p.Title)
	putString(r, "client_name", p.ClientName)
	putString(r, "description", p.Description)
	putString(r, "category", p.Category)
	putString(r, "image_url", p.ImageURL)
	putString(r, "project_url", p.ProjectURL)
	putInt(r, "sort_order", p.SortOrder)
	putBool(r, "is_active", p.IsActive)
	if p.Technologies != nil {
		r["technologies"] = p.Technologies
	}
	return r
}

type ChatLead struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

func (l ChatLead) Fields() Row {
	r := Row{"name": l.Name, "email": l.Email}
	if l.Phone != "" {
		r["phone"] = l.Phone
	}
	if l.Company != "" {
		r["company"] = l.Company
	}
	return r
}

func putString(r Row, col string, v *string) {
	if v != nil {
		r[col] = *v
	}
}

func putInt(r Row, col string, v *int) {
	if v != nil {
		r[col] = int64(*v)
	}
}

func putBool(r Row, col string, v *bool) {
	if v != nil {
		r[col] = *v
	}
}
