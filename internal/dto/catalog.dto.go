package dto

import "github.com/BruksfildServices01/groomer-scheduler/internal/domain/catalog"

type ServiceDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
	Duration    string  `json:"duration"`
	Category    string  `json:"category"`
	Glyph       string  `json:"glyph"`
	Popular     bool    `json:"popular"`
}

func NewServiceDTOs(in []catalog.Service) []ServiceDTO {
	out := make([]ServiceDTO, 0, len(in))
	for _, s := range in {
		out = append(out, ServiceDTO{
			ID:          int(s.ID),
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			DurationMin: s.DurationMin,
			Duration:    catalog.FormatDuration(s.DurationMin),
			Category:    string(s.Category),
			Glyph:       s.Glyph,
			Popular:     s.Popular,
		})
	}
	return out
}

type TotalsDTO struct {
	Services    []string `json:"services"`
	Price       float64  `json:"price"`
	DurationMin int      `json:"duration_min"`
	Duration    string   `json:"duration"`
}
