package content

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	ErrLeadNameRequired = errors.New("name is required")
	ErrLeadInvalidEmail = errors.New("a valid email is required")
	ErrPostNotFound     = errors.New("blog post not found")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Service serves the public read side of the site and lead capture.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Published returns the visible rows of table in presentation order.
func (s *Service) Published(ctx context.Context, table Table) ([]Row, error) {
	if !table.Mutable() {
		return nil, fmt.Errorf("%w: %q is not a content table", ErrUnknownTable, table)
	}
	order, desc := table.OrderingColumn()
	rows, err := s.store.Select(ctx, Query{
		Table:      table,
		Filters:    []Filter{{Column: table.VisibilityColumn(), Value: true}},
		OrderBy:    order,
		Descending: desc,
	})
	if err != nil {
		logrus.Errorf("error loading %s: %v", table, err)
		return nil, err
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

func (s *Service) BlogPostBySlug(ctx context.Context, slug string) (Row, error) {
	rows, err := s.store.Select(ctx, Query{
		Table: TableBlogPosts,
		Filters: []Filter{
			{Column: "slug", Value: slug},
			{Column: "is_published", Value: true},
		},
		Limit: 1,
	})
	if err != nil {
		logrus.Errorf("error loading blog post %q: %v", slug, err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrPostNotFound
	}
	return rows[0], nil
}

// CaptureLead writes one chat_leads row. Leads are never updated afterwards.
func (s *Service) CaptureLead(ctx context.Context, lead ChatLead) (Row, error) {
	lead.Name = strings.TrimSpace(lead.Name)
	lead.Email = strings.TrimSpace(lead.Email)
	if lead.Name == "" {
		return nil, ErrLeadNameRequired
	}
	if !ValidEmail(lead.Email) {
		return nil, ErrLeadInvalidEmail
	}

	row, err := s.store.Insert(ctx, TableChatLeads, lead.Fields())
	if err != nil {
		logrus.Errorf("error saving chat lead for %s: %v", lead.Email, err)
		return nil, err
	}
	logrus.Infof("chat lead captured: %s", row.ID())
	return row, nil
}
