package dto

// RecountSummaryDTO 全量重算的汇总
type RecountSummaryDTO struct {
	Scanned   int      `json:"scanned"`
	Corrected int      `json:"corrected"`
	Failed    []uint64 `json:"failed"`
}
