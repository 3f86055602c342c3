package model

import "time"

// Goal 用户设定的个人目标，可附带一张图片
// swagger:model Goal
type Goal struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
