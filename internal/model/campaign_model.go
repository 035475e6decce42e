package model

import (
	"time"
)

// CampaignModel 募捐活动模型
type CampaignModel struct {
	Id        int64     `json:"-" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 活动编号，从0开始顺序分配，创建后不可变
	CampaignId int64 `json:"campaign_id" gorm:"uniqueIndex;not null"`

	// 基本信息
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	Image       string `json:"image"`

	// 活动条款，创建后不可变
	Beneficiary string    `json:"beneficiary" gorm:"not null"`
	Goal        int64     `json:"goal" gorm:"not null"`         // 目标金额（最小单位）
	MinDonation int64     `json:"min_donation" gorm:"not null"` // 最低捐款金额（最小单位）
	Deadline    time.Time `json:"deadline" gorm:"not null"`

	// 结算状态
	TotalCollected int64 `json:"total_collected" gorm:"default:0"`
	Withdrawn      bool  `json:"withdrawn" gorm:"default:false"`
}

// TableName 自定义表名
func (CampaignModel) TableName() string {
	return "campaign"
}

// CampaignStatus 活动状态（由截止时间和金额推导，不落库）
type CampaignStatus string

const (
	CampaignStatusActive     CampaignStatus = "active"     // 进行中
	CampaignStatusSuccessful CampaignStatus = "successful" // 达标待提取
	CampaignStatusFailed     CampaignStatus = "failed"     // 未达标
	CampaignStatusWithdrawn  CampaignStatus = "withdrawn"  // 资金已提取
)

// StatusAt 计算活动在指定时刻的状态
func (c *CampaignModel) StatusAt(now time.Time) CampaignStatus {
	if c.Withdrawn {
		return CampaignStatusWithdrawn
	}
	if !now.After(c.Deadline) {
		return CampaignStatusActive
	}
	if c.TotalCollected >= c.Goal {
		return CampaignStatusSuccessful
	}
	return CampaignStatusFailed
}
