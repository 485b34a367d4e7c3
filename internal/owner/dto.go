// AngelaMos | 2026
// dto.go

package owner

import (
	"net/url"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
)

type CreateOwnerRequest struct {
	Email       string       `json:"email"       validate:"required,email,max=255"`
	Password    string       `json:"password"    validate:"required,min=6,max=128"`
	ContactName string       `json:"contactName" validate:"required,max=150"`
	CompanyName *string      `json:"companyName" validate:"omitempty,max=150"`
	Phone       *string      `json:"phone"       validate:"omitempty,max=30"`
	TaxID       *string      `json:"taxId"       validate:"omitempty,max=30"`
	Permissions *Permissions `json:"permissions"`
}

// UpdateOwnerRequest edits an owner. An empty contactName is ignored;
// the other fields are replaced whenever present, null clears them.
type UpdateOwnerRequest struct {
	ContactName *string                    `json:"contactName" validate:"omitempty,max=150"`
	CompanyName core.Optional[string]      `json:"companyName"`
	Phone       core.Optional[string]      `json:"phone"`
	TaxID       core.Optional[string]      `json:"taxId"`
	Permissions core.Optional[Permissions] `json:"permissions"`
}

type OwnerResponse struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	ContactName string       `json:"contactName"`
	CompanyName *string      `json:"companyName"`
	Phone       *string      `json:"phone"`
	TaxID       *string      `json:"taxId"`
	Role        string       `json:"role"`
	Permissions *Permissions `json:"permissions"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type PropertyTotal struct {
	Properties int `json:"properties"`
}

type OwnerWithTotal struct {
	OwnerResponse
	Count PropertyTotal `json:"_count"`
}

type MutationResponse struct {
	Message string         `json:"message"`
	Owner   OwnerWithTotal `json:"owner"`
}

type OwnerListItem struct {
	OwnerResponse
	Properties []PropertySummary `json:"properties"`
	Count      Counts            `json:"_count"`
}

type OwnerListResponse struct {
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Total  int             `json:"total"`
	Owners []OwnerListItem `json:"owners"`
}

type OwnerDetailResponse struct {
	OwnerResponse
	Properties []PropertyDetail `json:"properties"`
	Count      Counts           `json:"_count"`
}

type Filter struct {
	Search  string
	Created core.DateRange
}

type ListParams struct {
	Filter
	core.PageParams
}

// ListItem is an owner row with its embedded properties and counts.
type ListItem struct {
	Owner
	Counts     Counts
	Properties []PropertySummary
}

type Detail struct {
	Owner
	Counts     Counts
	Properties []PropertyDetail
}

func ParseFilter(q url.Values) (Filter, error) {
	created, err := core.ParseDateRange(q)
	if err != nil {
		return Filter{}, err
	}

	return Filter{
		Search:  strings.TrimSpace(q.Get("search")),
		Created: created,
	}, nil
}

func ToOwnerResponse(o *Owner) OwnerResponse {
	return OwnerResponse{
		ID:          o.ID,
		Email:       o.Email,
		ContactName: o.ContactName,
		CompanyName: o.CompanyName,
		Phone:       o.Phone,
		TaxID:       o.TaxID,
		Role:        o.Role,
		Permissions: o.Permissions,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toListItems(items []ListItem) []OwnerListItem {
	out := make([]OwnerListItem, 0, len(items))
	for i := range items {
		props := items[i].Properties
		if props == nil {
			props = []PropertySummary{}
		}
		out = append(out, OwnerListItem{
			OwnerResponse: ToOwnerResponse(&items[i].Owner),
			Properties:    props,
			Count:         items[i].Counts,
		})
	}
	return out
}

func toDetailResponse(d *Detail) OwnerDetailResponse {
	props := d.Properties
	if props == nil {
		props = []PropertyDetail{}
	}
	return OwnerDetailResponse{
		OwnerResponse: ToOwnerResponse(&d.Owner),
		Properties:    props,
		Count:         d.Counts,
	}
}

func toMutationResponse(message string, o *Owner, properties int) MutationResponse {
	return MutationResponse{
		Message: message,
		Owner: OwnerWithTotal{
			OwnerResponse: ToOwnerResponse(o),
			Count:         PropertyTotal{Properties: properties},
		},
	}
}
