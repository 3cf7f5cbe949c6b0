// Package http provides the HTTP handler layer for the offer search API.
package http

import (
	"github.com/kingcrud12/easy-flight-project/internal/domain"
	"github.com/kingcrud12/easy-flight-project/internal/quota"
)

// ToDomainCriteria converts a validated SearchOffersRequest to
// domain.SearchCriteria with defaults applied.
func ToDomainCriteria(req *SearchOffersRequest) domain.SearchCriteria {
	criteria := domain.SearchCriteria{
		DepartureID:  req.DepartureID,
		ArrivalID:    req.ArrivalID,
		OutboundDate: req.OutboundDate,
		ReturnDate:   req.ReturnDate,
		Currency:     req.Currency,
		MaxPrice:     req.MaxPrice,
		MaxStops:     req.MaxStops,
		Airlines:     nonEmptyAirlines(req),
		SortHint:     req.SortBy,
	}
	if req.TopN != nil {
		criteria.TopN = *req.TopN
	}

	criteria.SetDefaults()
	return criteria
}

// nonEmptyAirlines returns the airline whitelist with blank entries dropped.
func nonEmptyAirlines(req *SearchOffersRequest) []string {
	list := req.airlineList()
	if len(list) == 0 {
		return nil
	}

	airlines := make([]string, 0, len(list))
	for _, a := range list {
		if a != "" {
			airlines = append(airlines, a)
		}
	}
	if len(airlines) == 0 {
		return nil
	}
	return airlines
}

// ToQuotaResponse converts a quota status to its API representation.
func ToQuotaResponse(status quota.Status) *QuotaResponse {
	return &QuotaResponse{
		Remaining:          status.Remaining,
		Limit:              status.Limit,
		SubscriptionActive: status.SubscriptionActive,
		RequiresLogin:      status.RequiresLogin,
		Email:              status.Email,
	}
}
