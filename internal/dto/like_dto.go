package dto

// LikeResponse: the liked state after a toggle or status read, plus
// the target's current like count.
type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}
