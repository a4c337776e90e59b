package services

import (
	"time"

	"github.com/printshop/printshop-api/models"
)

var designTypeSeedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// DefaultDesignTypes is the catalog the mock service starts from.
func DefaultDesignTypes() []models.DesignType {
	desc := func(s string) *string { return &s }
	seed := []models.DesignType{
		{ID: "1", Code: "T", Name: "Tem nhãn", Description: desc("Tem, nhãn dán decal"), CodeFormat: "{customerCode}-{designType}-{number:3}-{date:YYMMDD}", SortOrder: 1, IsActive: true},
		{ID: "2", Code: "H", Name: "Hộp giấy", Description: desc("Hộp giấy ivory, duplex"), CodeFormat: "{customerCode}-{designType}-{number:3}", SortOrder: 2, IsActive: true},
		{ID: "3", Code: "TR", Name: "Tờ rơi", CodeFormat: "{designType}{date:YYMM}-{customerCode}-{number:4}", SortOrder: 3, IsActive: true},
		{ID: "4", Code: "DT", Name: "Danh thiếp", SortOrder: 4, IsActive: true},
		{ID: "5", Code: "CT", Name: "Catalogue", Description: desc("Catalogue, brochure nhiều trang"), CodeFormat: "{customerCode}-{designType}-{number:2}", SortOrder: 5, IsActive: true},
		{ID: "6", Code: "TG", Name: "Túi giấy", SortOrder: 6, IsActive: false},
	}
	for i := range seed {
		seed[i].CreatedAt = designTypeSeedTime
		seed[i].UpdatedAt = designTypeSeedTime
		seed[i].CreatedBy = "system"
		seed[i].UpdatedBy = "system"
	}
	return seed
}
