package model

import (
	"time"
)

// 事件类型
const (
	EventCampaignCreated = "campaign_created"
	EventDonation        = "donation"
	EventWithdrawal      = "withdrawal"
	EventRefund          = "refund"
	EventCampaignSuccess = "campaign_success"
	EventCampaignFailed  = "campaign_failed"
)

// EventModel 结算事件记录，供展示/索引方消费
type EventModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;index"`
	Kind       string `json:"kind" gorm:"not null"`
	Actor      string `json:"actor"`
	Amount     int64  `json:"amount"`
}

// TableName 自定义表名
func (EventModel) TableName() string {
	return "event"
}
