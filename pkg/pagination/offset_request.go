package pagination

import "fmt"

// OffsetRequest is one from/size window of a paginated search
type OffsetRequest struct {
	From int `json:"from"`
	Size int `json:"size"`
}

// NewOffsetRequest starts a pagination run at offset zero
func NewOffsetRequest(size int) OffsetRequest {
	return OffsetRequest{From: 0, Size: size}
}

// Validate checks the window size against the result window ceiling
func (r OffsetRequest) Validate(ceiling int) error {
	if r.Size <= 0 {
		return fmt.Errorf("page size must be positive, got %d", r.Size)
	}
	if ceiling <= 0 {
		return fmt.Errorf("result window must be positive, got %d", ceiling)
	}
	if r.Size > ceiling {
		return fmt.Errorf("page size %d exceeds result window %d", r.Size, ceiling)
	}
	return nil
}

// Fits reports whether the window stays within the ceiling
func (r OffsetRequest) Fits(ceiling int) bool {
	return r.From+r.Size <= ceiling
}

// Next returns the window following r
func (r OffsetRequest) Next() OffsetRequest {
	return OffsetRequest{From: r.From + r.Size, Size: r.Size}
}
