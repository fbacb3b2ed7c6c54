package models

// OrderRecordDTO is the CSV shape of an OrderRecord, consumed by gocsv.
type OrderRecordDTO struct {
	ID    int     `csv:"id"`
	Col   int     `csv:"col"`
	Idx   int     `csv:"idx"`
	Size  float64 `csv:"size"`
	Price float64 `csv:"price"`
	Fees  float64 `csv:"fees"`
	Side  string  `csv:"side"`
}

func (r OrderRecord) ToDTO() *OrderRecordDTO {
	return &OrderRecordDTO{
		ID:    r.ID,
		Col:   r.Col,
		Idx:   r.Idx,
		Size:  r.Size,
		Price: r.Price,
		Fees:  r.Fees,
		Side:  string(r.Side),
	}
}

func OrderRecordsToDTO(records []OrderRecord) []*OrderRecordDTO {
	out := make([]*OrderRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToDTO())
	}
	return out
}
