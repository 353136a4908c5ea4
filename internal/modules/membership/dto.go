package membership

// MembershipTypeRequest is used for both create and update.
type MembershipTypeRequest struct {
	Name string `json:"name" binding:"required,notblank,min=2,max=128"`
	// minor units; 0 is a free plan
	MonthlyPrice *int64 `json:"monthly_price" binding:"required,min=0"`
	// 0 means unlimited
	ClassLimit int   `json:"class_limit" binding:"min=0"`
	IsActive   *bool `json:"is_active"`
}
