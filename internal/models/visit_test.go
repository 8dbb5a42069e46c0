package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tomasvik/geovisits/internal/models"
)

func TestVisitFilter_Normalize(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults", 0, 0, 1, 100},
		{"negative page", -3, 50, 1, 50},
		{"oversized page size clamps", 2, 5000, 2, 1000},
		{"in range untouched", 4, 25, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := models.VisitFilter{Page: tt.page, PageSize: tt.pageSize}
			f.Normalize()
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantPageSize, f.PageSize)
		})
	}
}

func TestVisitEvent_ObservedDwellSeconds(t *testing.T) {
	v := models.VisitEvent{ArrivedAtUTC: 1000, LastSeenAtUTC: 1300}
	assert.Equal(t, int64(300), v.ObservedDwellSeconds())

	single := models.VisitEvent{ArrivedAtUTC: 1000, LastSeenAtUTC: 1000}
	assert.Equal(t, int64(0), single.ObservedDwellSeconds())
}
