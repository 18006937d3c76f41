package dto

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type AdminSummary struct {
	TotalUsers    int64 `json:"totalUsers"`
	PremiumUsers  int64 `json:"premiumUsers"`
	TotalLessons  int64 `json:"totalLessons"`
	TotalReports  int64 `json:"totalReports"`
	FlaggedCount  int64 `json:"flaggedLessons"`
	FeaturedCount int64 `json:"featuredLessons"`
}

type UserSummary struct {
	Email          string `json:"email"`
	TotalLessons   int64  `json:"totalLessons"`
	TotalLikes     int64  `json:"totalLikes"`
	TotalFavorites int64  `json:"totalFavorites"`
}

type Contributor struct {
	CreatorEmail string `json:"creatorEmail"`
	CreatorName  string `json:"creatorName"`
	CreatorPhoto string `json:"creatorPhoto"`
	LessonCount  int64  `json:"lessonCount"`
}
