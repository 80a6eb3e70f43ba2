package mcmi

import "time"

// ScaleResult carries every value produced for one scale, including the
// intermediate correction steps, so the printed report can show the full
// trail. A correction field is nil unless the scale is a member of that
// correction's applicability set; an applicable-but-untriggered step
// still records the running value so its report column is populated.
type ScaleResult struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Raw      int    `json:"raw"`
	BaseRate int    `json:"base_rate"`
	XCor     *int   `json:"x_cor,omitempty"`
	HalfXCor *int   `json:"half_x_cor,omitempty"`
	DAAdj    *int   `json:"da_adj,omitempty"`
	DDAdj    *int   `json:"dd_adj,omitempty"`
	DCAdj    *int   `json:"dc_adj,omitempty"`
	InpAdj   *int   `json:"inp_adj,omitempty"`
	Final    int    `json:"final"`
}

// ScoreReport is the complete outcome of one scoring run: the disclosure
// scale's raw count and Base Rate, every clinical scale's result, and
// the test date. It is assembled once and never mutated; the portal
// persists it verbatim as an opaque payload.
type ScoreReport struct {
	XRaw     int                    `json:"x_raw"`
	XScore   int                    `json:"x_score"`
	Scales   map[string]ScaleResult `json:"scales"`
	TestDate time.Time              `json:"test_date"`
}
