package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCustomsKeywordsCaseInsensitive(t *testing.T) {
	cases := []struct {
		name   string
		status string
		event  string
		want   Category
	}{
		{"lowercase keyword", "intransit", "pacote retido na alfândega para pagamento", CategoryCustomsHeld},
		{"uppercase keyword", "intransit", "Pacote retido na ALFÂNDEGA", CategoryCustomsHeld},
		{"mixed case english", "intransit", "Import Customs clearance delay", CategoryCustomsHeld},
		{"tax keyword", "intransit", "Aguardando pagamento de taxa", CategoryCustomsHeld},
		{"customs status code", "InTransit_CustomsProcessing", "moving along", CategoryCustomsHeld},
		{"customs hold status", "CustomsHold", "", CategoryCustomsHeld},
		{"alert status", "Alert", "carrier note", CategoryAlert},
		{"expired status", "expired", "", CategoryProblem},
		{"undelivered status", "Undelivered", "", CategoryProblem},
		{"returning wins over customs", "alert", "Package returning to sender after customs", CategoryReturning},
		{"returning in portuguese", "intransit", "Pacote retornando ao remetente", CategoryReturning},
		{"clean shipment", "InTransit", "Arrived at sorting center", CategoryNone},
		{"empty", "", "", CategoryNone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.status, tc.event))
		})
	}
}

func TestClassifyInfo(t *testing.T) {
	info := TrackInfo{
		Number: "BR123",
		Detail: Detail{
			LatestStatus: LatestStatus{Status: "InTransit"},
			LatestEvent:  LatestEvent{Description: "Customs duties payment requested"},
		},
	}
	assert.Equal(t, CategoryCustomsHeld, ClassifyInfo(info))
}

func TestClassifySummary(t *testing.T) {
	s := TrackingSummary{
		Number:          "BR456",
		PackageStatus:   "Alert",
		LatestEventInfo: "Carrier note",
	}
	assert.Equal(t, CategoryAlert, ClassifySummary(s))
}
