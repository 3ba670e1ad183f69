package models

// OpportunitiesRequest is the query surface of GET /api/opportunities.
type OpportunitiesRequest struct {
	Date     string  `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Team     string  `query:"team" validate:"omitempty,alphanum,min=2,max=3"`
	MinScore float64 `query:"min_score" default:"40" validate:"gte=0,lte=100"`
	Limit    int     `query:"limit" default:"50" validate:"gte=1,lte=200"`
	Refresh  bool    `query:"refresh"`
}

// ClassifyRequest is the query surface of GET /api/opportunities/classify.
type ClassifyRequest struct {
	Date string `query:"date" validate:"omitempty,datetime=2006-01-02"`
	Mode string `query:"mode" default:"confidence" validate:"oneof=confidence position timing"`
}
