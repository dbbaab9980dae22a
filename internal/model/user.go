package model

type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	Address     string `json:"address,omitempty"`
	IsSeller    bool   `json:"is_seller"`
	Points      int64  `json:"points"`
	TotalPoints int64  `json:"total_points"`
}

type GetMeRequest struct{}

type GetMeResponse User

type GetUserRequest struct {
	UserID string `json:"user_id"`
}

type GetUserResponse struct {
	User           User               `json:"user"`
	FollowingCount int64              `json:"following_count"`
	FollowerCount  int64              `json:"follower_count"`
	IsFollowing    bool               `json:"is_following"`
	RecentEntries  []PointLedgerEntry `json:"recent_entries"`
}

type ToggleFollowRequest struct {
	UserID string `json:"user_id"`
}

type ToggleFollowResponse struct {
	IsFollowing    bool  `json:"is_following"`
	FollowingCount int64 `json:"following_count"`
	FollowerCount  int64 `json:"follower_count"`
}

type GetFollowingRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowingResponse struct {
	Users []User `json:"users"`
}

type GetFollowersRequest struct {
	UserID string `json:"user_id"`
}

type GetFollowersResponse struct {
	Users []User `json:"users"`
}

type GetContactsRequest struct{}

type GetContactsResponse struct {
	Users []User `json:"users"`
}
