package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agencysite/internal/content"

	"github.com/sashabaranov/go-openai"
)

type ToolName string

const (
	ToolListItems           ToolName = "list_items"
	ToolUpsertService       ToolName = "upsert_service"
	ToolUpsertPricingPlan   ToolName = "upsert_pricing_plan"
	ToolUpsertBlogPost      ToolName = "upsert_blog_post"
	ToolUpsertPortfolioItem ToolName = "upsert_portfolio_item"
	ToolUpsertTestimonial   ToolName = "upsert_testimonial"
	ToolDeleteItem          ToolName = "delete_item"
)

var ErrUnknownTool = errors.New("unknown tool")

type ChatGPTFunction struct {
	Name        ToolName                  `json:"name"`
	Description string                    `json:"description"`
	Parameters  ChatGPTFunctionParameters `json:"parameters"`
}

type ChatGPTFunctionParameters struct {
	Type       string                     `json:"type"`
	Properties map[string]ChatGPTProperty `json:"properties"`
	Required   []string                   `json:"required"`
}

type ChatGPTProperty struct {
	Type        string           `json:"type"`
	Description string           `json:"description"`
	Enum        []string         `json:"enum,omitempty"`
	Items       *ChatGPTProperty `json:"items,omitempty"`
	Minimum     any              `json:"minimum,omitempty"`
	Maximum     any              `json:"maximum,omitempty"`
}

func tableNames() []string {
	tables := content.Tables()
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = string(t)
	}
	return names
}

func mutableTableNames() []string {
	var names []string
	for _, t := range content.Tables() {
		if t.Mutable() {
			names = append(names, string(t))
		}
	}
	return names
}

var (
	idProperty        = ChatGPTProperty{Type: "string", Description: "Existing row id. Omit to create a new row."}
	sortOrderProperty = ChatGPTProperty{Type: "integer", Description: "Position in listings, lowest first"}
	isActiveProperty  = ChatGPTProperty{Type: "boolean", Description: "Whether the row is shown on the public site"}
	stringList        = &ChatGPTProperty{Type: "string"}
)

// ToolFunctions is the complete set of tools offered to the model in admin mode.
func ToolFunctions() []ChatGPTFunction {
	return []ChatGPTFunction{
		{
			Name:        ToolListItems,
			Description: "List rows of a site table, newest first, at most 50",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"table":            {Type: "string", Description: "Table to list", Enum: tableNames()},
					"include_inactive": {Type: "boolean", Description: "Also return hidden or unpublished rows"},
				},
				Required: []string{"table"},
			},
		},
		{
			Name:        ToolUpsertService,
			Description: "Create a service, or update it when id is given",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"id":          idProperty,
					"title":       {Type: "string", Description: "Service title"},
					"description": {Type: "string", Description: "Short description"},
					"icon":        {Type: "string", Description: "Icon name"},
					"category":    {Type: "string", Description: "Service category"},
					"features":    {Type: "array", Description: "Feature bullet points", Items: stringList},
					"price_from":  {Type: "string", Description: "Starting price label, e.g. 'from $900'"},
					"sort_order":  sortOrderProperty,
					"is_active":   isActiveProperty,
				},
			},
		},
		{
			Name:        ToolUpsertPricingPlan,
			Description: "Create a pricing plan, or update it when id is given",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"id":          idProperty,
					"name":        {Type: "string", Description: "Plan name"},
					"description": {Type: "string", Description: "Short description"},
					"pages":       {Type: "string", Description: "Page count label, e.g. '5 pages'"},
					"price":       {Type: "string", Description: "Price label"},
					"price_note":  {Type: "string", Description: "Small print shown under the price"},
					"icon":        {Type: "string", Description: "Icon name"},
					"features":    {Type: "array", Description: "Included features", Items: stringList},
					"is_popular":  {Type: "boolean", Description: "Highlight the plan as most popular"},
					"sort_order":  sortOrderProperty,
					"is_active":   isActiveProperty,
				},
			},
		},
		{
			Name:        ToolUpsertBlogPost,
			Description: "Create a blog post, or update it when id is given. The slug is derived from the title when omitted on create.",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"id":              idProperty,
					"title":           {Type: "string", Description: "Post title"},
					"slug":            {Type: "string", Description: "URL slug"},
					"excerpt":         {Type: "string", Description: "Summary shown in listings"},
					"content":         {Type: "string", Description: "Full post body in markdown"},
					"cover_image_url": {Type: "string", Description: "Cover image URL"},
					"author":          {Type: "string", Description: "Author name"},
					"tags":            {Type: "array", Description: "Tags", Items: stringList},
					"is_published":    {Type: "boolean", Description: "Publish the post"},
					"published_at":    {Type: "string", Description: "Publication time, RFC 3339. Defaults to now when publishing."},
				},
			},
		},
		{
			Name:        ToolUpsertPortfolioItem,
			Description: "Create a portfolio item, or update it when id is given",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"id":           idProperty,
					"title":        {Type: "string", Description: "Project title"},
					"client_name":  {Type: "string", Description: "Client name"},
					"description":  {Type: "string", Description: "Project description"},
					"category":     {Type: "string", Description: "Project category"},
					"image_url":    {Type: "string", Description: "Preview image URL"},
					"project_url":  {Type: "string", Description: "Live project URL"},
					"technologies": {Type: "array", Description: "Technologies used", Items: stringList},
					"sort_order":   sortOrderProperty,
					"is_active":    isActiveProperty,
				},
			},
		},
		{
			Name:        ToolUpsertTestimonial,
			Description: "Create a testimonial, or update it when id is given",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"id":         idProperty,
					"name":       {Type: "string", Description: "Client name"},
					"role":       {Type: "string", Description: "Client job title"},
					"company":    {Type: "string", Description: "Client company"},
					"content":    {Type: "string", Description: "Testimonial text"},
					"rating":     {Type: "integer", Description: "Rating from 1 to 5", Minimum: 1, Maximum: 5},
					"avatar_url": {Type: "string", Description: "Avatar image URL"},
					"sort_order": sortOrderProperty,
					"is_active":  isActiveProperty,
				},
			},
		},
		{
			Name:        ToolDeleteItem,
			Description: "Delete a row by id",
			Parameters: ChatGPTFunctionParameters{
				Type: "object",
				Properties: map[string]ChatGPTProperty{
					"table": {Type: "string", Description: "Table holding the row", Enum: mutableTableNames()},
					"id":    {Type: "string", Description: "Row id"},
				},
				Required: []string{"table", "id"},
			},
		},
	}
}

func convertToOpenAITools(functions []ChatGPTFunction) []openai.Tool {
	tools := make([]openai.Tool, 0, len(functions))
	for _, fn := range functions {
		params := map[string]any{
			"type":       fn.Parameters.Type,
			"properties": convertProperties(fn.Parameters.Properties),
		}
		if len(fn.Parameters.Required) > 0 {
			params["required"] = fn.Parameters.Required
		}
		tools = append(tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        string(fn.Name),
				Description: fn.Description,
				Parameters:  params,
			},
		})
	}
	return tools
}

func convertProperties(properties map[string]ChatGPTProperty) map[string]any {
	result := make(map[string]any, len(properties))
	for key, prop := range properties {
		result[key] = convertProperty(prop)
	}
	return result
}

func convertProperty(prop ChatGPTProperty) map[string]any {
	m := map[string]any{"type": prop.Type}
	if prop.Description != "" {
		m["description"] = prop.Description
	}
	if len(prop.Enum) > 0 {
		m["enum"] = prop.Enum
	}
	if prop.Items != nil {
		m["items"] = convertProperty(*prop.Items)
	}
	if prop.Minimum != nil {
		m["minimum"] = prop.Minimum
	}
	if prop.Maximum != nil {
		m["maximum"] = prop.Maximum
	}
	return m
}

// decodeToolCall parses the model's arguments into the typed call for name.
func decodeToolCall(name, arguments string) (toolCall, error) {
	if strings.TrimSpace(arguments) == "" {
		arguments = "{}"
	}
	raw := []byte(arguments)

	switch ToolName(name) {
	case ToolListItems:
		var args struct {
			Table           string `json:"table"`
			IncludeInactive bool   `json:"include_inactive"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		table, err := content.ParseTable(args.Table)
		if err != nil {
			return nil, err
		}
		return listItemsCall{table: table, includeInactive: args.IncludeInactive}, nil

	case ToolUpsertService:
		var c upsertServiceCall
		if err := json.Unmarshal(raw, &c.input); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		return c, nil

	case ToolUpsertPricingPlan:
		var c upsertPricingPlanCall
		if err := json.Unmarshal(raw, &c.input); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		return c, nil

	case ToolUpsertBlogPost:
		var c upsertBlogPostCall
		if err := json.Unmarshal(raw, &c.input); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		return c, nil

	case ToolUpsertPortfolioItem:
		var c upsertPortfolioItemCall
		if err := json.Unmarshal(raw, &c.input); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		return c, nil

	case ToolUpsertTestimonial:
		var c upsertTestimonialCall
		if err := json.Unmarshal(raw, &c.input); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		return c, nil

	case ToolDeleteItem:
		var args struct {
			Table string `json:"table"`
			ID    string `json:"id"`
		}
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, fmt.Errorf("invalid %s arguments: %w", name, err)
		}
		table, err := content.ParseTable(args.Table)
		if err != nil {
			return nil, err
		}
		if !table.Mutable() {
			return nil, fmt.Errorf("rows in %s cannot be deleted", table)
		}
		if strings.TrimSpace(args.ID) == "" {
			return nil, errors.New("id is required")
		}
		return deleteItemCall{table: table, id: args.ID}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
}
