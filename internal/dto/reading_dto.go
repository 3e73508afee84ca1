package dto

// DTOs for reading-session operations

// OpenSessionRequest: payload for opening a reader on a book. StartPage is
// the optional one-shot "continue from page N" hint.
type OpenSessionRequest struct {
	BookID    int64 `json:"book_id" binding:"required,gt=0"`
	StartPage *int  `json:"start_page,omitempty" binding:"omitempty,min=0"`
}

// TurnPageRequest: payload for a page turn within the open session
type TurnPageRequest struct {
	Direction string `json:"direction" binding:"required,oneof=next prev"`
}

// SessionResponse: the state of the open session after a transition
type SessionResponse struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Page      int    `json:"page"`
	PageCount int    `json:"page_count"`
}
