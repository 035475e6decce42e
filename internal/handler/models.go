package handler

import (
	"time"

	"github.com/blues/fes/internal/model"
)

// Response 统一响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// DonateRequest 捐款请求
type DonateRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// ActorRequest 提取/退款请求，只携带调用方地址
type ActorRequest struct {
	Address string `json:"address" binding:"required"`
}

// CampaignResponse 活动快照及推导状态
type CampaignResponse struct {
	CampaignId     int64                `json:"campaign_id"`
	Name           string               `json:"name"`
	Description    string               `json:"description"`
	Image          string               `json:"image"`
	Beneficiary    string               `json:"beneficiary"`
	Goal           int64                `json:"goal"`
	MinDonation    int64                `json:"min_donation"`
	Deadline       time.Time            `json:"deadline"`
	TotalCollected int64                `json:"total_collected"`
	Withdrawn      bool                 `json:"withdrawn"`
	Status         model.CampaignStatus `json:"status"`
}

// newCampaignResponse 由模型构建响应
func newCampaignResponse(c *model.CampaignModel, status model.CampaignStatus) CampaignResponse {
	return CampaignResponse{
		CampaignId:     c.CampaignId,
		Name:           c.Name,
		Description:    c.Description,
		Image:          c.Image,
		Beneficiary:    c.Beneficiary,
		Goal:           c.Goal,
		MinDonation:    c.MinDonation,
		Deadline:       c.Deadline,
		TotalCollected: c.TotalCollected,
		Withdrawn:      c.Withdrawn,
		Status:         status,
	}
}
