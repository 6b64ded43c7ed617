package tracking

import (
	"encoding/json"
	"fmt"
)

// envelope is the provider's response wrapper. code != 0 signals an
// application-level error regardless of the HTTP status.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Page    *pageInfo       `json:"page"`
}

type pageInfo struct {
	DataTotal int `json:"data_total"`
	PageSize  int `json:"page_size"`
}

// APIError is a non-zero envelope code.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tracking api error %d: %s", e.Code, e.Message)
}

// TrackingRef identifies one registered shipment.
type TrackingRef struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier,omitempty"`
}

// TrackingSummary is one row of the track-list endpoint.
type TrackingSummary struct {
	Number              string `json:"number"`
	Carrier             int    `json:"carrier"`
	PackageStatus       string `json:"package_status"`
	LatestEventInfo     string `json:"latest_event_info"`
	ShippingCountry     string `json:"shipping_country"`
	RecipientCountry    string `json:"recipient_country"`
	DaysAfterLastUpdate int    `json:"days_after_last_update"`
	DaysOfTransit       int    `json:"days_of_transit"`
}

// TrackInfo is one row of the track-info endpoint, carrying the full event
// detail for a shipment.
type TrackInfo struct {
	Number  string `json:"number"`
	Carrier int    `json:"carrier"`
	Detail  Detail `json:"track_info"`
}

type Detail struct {
	LatestStatus LatestStatus `json:"latest_status"`
	LatestEvent  LatestEvent  `json:"latest_event"`
}

type LatestStatus struct {
	Status    string `json:"status"`
	SubStatus string `json:"sub_status"`
}

type LatestEvent struct {
	Description string `json:"description"`
	TimeISO     string `json:"time_iso"`
	Location    string `json:"location"`
}

// listData / infoData are the accepted/rejected splits inside the envelope.
type listData struct {
	Accepted []TrackingSummary `json:"accepted"`
	Rejected []rejectedItem    `json:"rejected"`
}

type infoData struct {
	Accepted []TrackInfo    `json:"accepted"`
	Rejected []rejectedItem `json:"rejected"`
}

type rejectedItem struct {
	Number string `json:"number"`
	Error  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
