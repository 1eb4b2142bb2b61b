package search_rides

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-RideBookingService/internal/service/rides/models"
)

// parseQuery ?pickupCity=&dropoffCity=&date=&passengerCount=&maxPrice=
func parseQuery(q url.Values) (*models.SearchRequest, error) {
	req := &models.SearchRequest{
		PickupCity:  q.Get("pickupCity"),
		DropoffCity: q.Get("dropoffCity"),
		Date:        q.Get("date"),
	}

	if v := strings.TrimSpace(q.Get("passengerCount")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("passengerCount: %w", err)
		}
		req.PassengerCount = &n
	}

	if v := strings.TrimSpace(q.Get("maxPrice")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("maxPrice: %w", err)
		}
		req.MaxPrice = &n
	}

	return req, nil
}
