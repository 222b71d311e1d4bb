package content

import (
	"fmt"
	"sort"
)

type Table string

const (
	TableServices       Table = "services"
	TablePricingPlans   Table = "pricing_plans"
	TableTestimonials   Table = "testimonials"
	TableBlogPosts      Table = "blog_posts"
	TablePortfolioItems Table = "portfolio_items"
	TableChatLeads      Table = "chat_leads"
)

// ColumnKind is the storage type of a writable column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindBool
	KindTime
	KindTextArray
)

type tableSchema struct {
	visibility string
	ordering   string
	orderDesc  bool
	columns    map[string]ColumnKind
	defaults   Row
}

var schemas = map[Table]tableSchema{
	TableServices: {
		visibility: "is_active",
		ordering:   "sort_order",
		columns: map[string]ColumnKind{
			"title":       KindText,
			"description": KindText,
			"icon":        KindText,
			"category":    KindText,
			"features":    KindTextArray,
			"price_from":  KindText,
			"sort_order":  KindInt,
			"is_active":   KindBool,
		},
		defaults: Row{"sort_order": int64(0), "is_active": true},
	},
	TablePricingPlans: {
		visibility: "is_active",
		ordering:   "sort_order",
		columns: map[string]ColumnKind{
			"name":        KindText,
			"description": KindText,
			"pages":       KindText,
			"price":       KindText,
			"price_note":  KindText,
			"icon":        KindText,
			"features":    KindText,
			"is_popular":  KindBool,
			"sort_order":  KindInt,
			"is_active":   KindBool,
		},
		defaults: Row{"sort_order": int64(0), "is_active": true, "is_popular": false, "features": "[]"},
	},
	TableTestimonials: {
		visibility: "is_active",
		ordering:   "sort_order",
		columns: map[string]ColumnKind{
			"name":       KindText,
			"role":       KindText,
			"company":    KindText,
			"content":    KindText,
			"rating":     KindInt,
			"avatar_url": KindText,
			"sort_order": KindInt,
			"is_active":  KindBool,
		},
		defaults: Row{"sort_order": int64(0), "is_active": true, "rating": int64(5)},
	},
	TableBlogPosts: {
		visibility: "is_published",
		ordering:   "published_at",
		orderDesc:  true,
		columns: map[string]ColumnKind{
			"title":           KindText,
			"slug":            KindText,
			"excerpt":         KindText,
			"content":         KindText,
			"cover_image_url": KindText,
			"author":          KindText,
			"tags":            KindTextArray,
			"is_published":    KindBool,
			"published_at":    KindTime,
		},
		defaults: Row{"is_published": false, "tags": []string{}},
	},
	TablePortfolioItems: {
		visibility: "is_active",
		ordering:   "sort_order",
		columns: map[string]ColumnKind{
			"title":        KindText,
			"client_name":  KindText,
			"description":  KindText,
			"category":     KindText,
			"image_url":    KindText,
			"project_url":  KindText,
			"technologies": KindTextArray,
			"sort_order":   KindInt,
			"is_active":    KindBool,
		},
		defaults: Row{"sort_order": int64(0), "is_active": true, "technologies": []string{}},
	},
	TableChatLeads: {
		columns: map[string]ColumnKind{
			"name":    KindText,
			"email":   KindText,
			"phone":   KindText,
			"company": KindText,
		},
	},
}

// Tables returns every known table name in a stable order.
func Tables() []Table {
	out := make([]Table, 0, len(schemas))
	for t := range schemas {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func ParseTable(name string) (Table, error) {
	t := Table(name)
	if _, ok := schemas[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return t, nil
}

// VisibilityColumn is "is_active" or "is_published"; empty for chat_leads.
func (t Table) VisibilityColumn() string {
	return schemas[t].visibility
}

// OrderingColumn is the presentation ordering field and whether it sorts descending.
func (t Table) OrderingColumn() (string, bool) {
	s := schemas[t]
	return s.ordering, s.orderDesc
}

// Mutable reports whether the admin tools may write to or delete from the table.
// Leads are append-only from the public lead endpoint.
func (t Table) Mutable() bool {
	_, ok := schemas[t]
	return ok && t != TableChatLeads
}

func (t Table) columnKind(column string) (ColumnKind, bool) {
	k, ok := schemas[t].columns[column]
	return k, ok
}

// readable reports whether column may be used in a filter or order clause.
func (t Table) readable(column string) bool {
	switch column {
	case "id", "created_at", "updated_at":
		return true
	}
	_, ok := schemas[t].columns[column]
	return ok
}
