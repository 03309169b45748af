package handler

// loginRequest is the body of POST /auth/login.
type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// directoryQuery binds the list controls of the user and staff dashboards.
type directoryQuery struct {
	Search   string `query:"search"`
	SortBy   string `query:"sortBy" validate:"omitempty,oneof=isActive isVerified createdAt"`
	Order    string `query:"order" validate:"omitempty,oneof=asc desc"`
	Page     int    `query:"page" validate:"omitempty,gte=1"`
	PageSize int    `query:"pageSize" validate:"omitempty,gte=1,lte=100"`
}

// roleUpdateRequest is the body of PUT /admin/users/:id/role.
type roleUpdateRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Staff User"`
}

// activationRequest is the body of PUT /admin/users/:id/activation. The flag
// is a pointer so that an absent field fails validation instead of silently
// deactivating the account.
type activationRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// chapterRequest is the body of chapter create and update calls.
type chapterRequest struct {
	PageIndex int    `json:"pageIndex" validate:"gte=0"`
	Title     string `json:"title" validate:"required"`
	Content   string `json:"content" validate:"required"`
}

// planRequest is the body of plan create and update calls.
type planRequest struct {
	Name          string  `json:"name" validate:"required"`
	Type          string  `json:"type" validate:"required"`
	Status        string  `json:"status" validate:"required,oneof=active inactive"`
	OriginalPrice float64 `json:"originalPrice" validate:"gte=0"`
	Discount      float64 `json:"discount" validate:"gte=0,lte=100"`
}
