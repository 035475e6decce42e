package model

import (
	"time"
)

// DonationRecordModel 捐款台账，按 (活动, 捐款人) 累计
// 退款后金额清零，但记录不删除，0 表示没有未结清的债权
type DonationRecordModel struct {
	Id        int64     `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CampaignId int64  `json:"campaign_id" gorm:"not null;uniqueIndex:idx_campaign_donor"`
	Address    string `json:"address" gorm:"not null;uniqueIndex:idx_campaign_donor"`
	Amount     int64  `json:"amount" gorm:"not null;default:0"`
}

// TableName 自定义表名
func (DonationRecordModel) TableName() string {
	return "donation_record"
}
